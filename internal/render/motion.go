// Package render drives the external video-composition pipeline that turns
// extracted motion parameters into a short animation file.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"clario/backend/internal/model"
)

// DefaultParams is the fixed parameter set used when extraction yields no
// parseable JSON.
func DefaultParams() model.MotionParams {
	return model.MotionParams{
		Title:           "Motion in 1D",
		MotionType:      "linear",
		InitialVelocity: 0,
		Acceleration:    2,
		Angle:           45,
		ShowGraph:       true,
	}
}

// Renderer produces a video file for a parameter set and returns the asset's
// URL relative to the server root (under /videos/).
type Renderer interface {
	Render(ctx context.Context, params model.MotionParams) (string, error)
}

// CommandRenderer shells out to a configured render command, passing the
// parameters as a JSON argument and the output path as the final argument:
//
//	<command...> <params-json> <output-path>
//
// The reference pipeline is the bundled composition renderer; anything that
// honors this calling convention and writes the file can be substituted.
type CommandRenderer struct {
	command   []string
	videosDir string
}

func NewCommandRenderer(command, videosDir string) *CommandRenderer {
	return &CommandRenderer{command: strings.Fields(command), videosDir: videosDir}
}

func (r *CommandRenderer) Render(ctx context.Context, params model.MotionParams) (string, error) {
	if len(r.command) == 0 {
		return "", fmt.Errorf("no render command configured")
	}

	if err := os.MkdirAll(r.videosDir, 0750); err != nil {
		return "", fmt.Errorf("could not create videos directory: %w", err)
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("could not marshal render params: %w", err)
	}

	filename := "motion-" + uuid.NewString() + ".mp4"
	outputPath := filepath.Join(r.videosDir, filename)

	args := append(append([]string{}, r.command[1:]...), string(paramsJSON), outputPath)
	cmd := exec.CommandContext(ctx, r.command[0], args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("render command failed: %w: %s", err, string(output))
	}

	if _, err := os.Stat(outputPath); err != nil {
		return "", fmt.Errorf("render command produced no output file: %w", err)
	}
	return "/videos/" + filename, nil
}
