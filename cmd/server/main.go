package main

import (
	"os"

	"clario/backend/internal/app"
)

// @title           Clario Backend API
// @version         1.0
// @description     Chat relay, session store and video generation backend for the Clario JEE-prep frontend.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
