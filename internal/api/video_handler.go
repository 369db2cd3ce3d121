package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"clario/backend/internal/avatar"
	app_errors "clario/backend/internal/errors"
	"clario/backend/internal/interfaces"
	"clario/backend/internal/model"
)

// VideoHandler serves the two video-generation endpoints. Both keep the wire
// shapes the frontend already consumes, which is why they bypass the shared
// ErrorResponse helpers.
type VideoHandler struct {
	service interfaces.VideoService
}

func NewVideoHandler(svc interfaces.VideoService) *VideoHandler {
	return &VideoHandler{service: svc}
}

type GenerateVideoRequest struct {
	Text string `json:"text" validate:"required"`
}

type GenerateMotionVideoRequest struct {
	Question string `json:"question" validate:"required"`
}

// VideoResponse is the success body for an avatar video.
type VideoResponse struct {
	VideoURL string `json:"videoUrl"`
	TalkID   string `json:"talkId"`
	Message  string `json:"message"`
}

// MotionVideoResponse is the success body for a motion-diagram video.
type MotionVideoResponse struct {
	VideoURL string             `json:"videoUrl"`
	Message  string             `json:"message"`
	Params   model.MotionParams `json:"params"`
}

// VideoErrorResponse is the failure body for both video endpoints.
type VideoErrorResponse struct {
	Error      string          `json:"error"`
	Details    string          `json:"details,omitempty"`
	DIDError   json.RawMessage `json:"didError,omitempty"`
	NeedsSetup bool            `json:"needsSetup,omitempty"`
}

// HandleGenerateVideo godoc
// @Summary      Generate an avatar video
// @Description  Submits the text to the talking-head API and polls until the asset is ready.
// @Tags         Videos
// @Accept       json
// @Produce      json
// @Param        request  body  GenerateVideoRequest  true  "Script text"
// @Success      200  {object}  VideoResponse
// @Failure      400  {object}  VideoErrorResponse
// @Failure      500  {object}  VideoErrorResponse
// @Router       /generate-video [post]
func (h *VideoHandler) HandleGenerateVideo(w http.ResponseWriter, r *http.Request) {
	var req GenerateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, VideoErrorResponse{Error: "Text is required for video generation."})
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, VideoErrorResponse{Error: "Text is required for video generation."})
		return
	}

	talk, err := h.service.AvatarVideo(r.Context(), req.Text)
	if err != nil {
		h.respondAvatarError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, VideoResponse{
		VideoURL: talk.ResultURL,
		TalkID:   talk.ID,
		Message:  "Video generated successfully!",
	})
}

func (h *VideoHandler) respondAvatarError(w http.ResponseWriter, err error) {
	slog.Error("Avatar video generation failed", "error", err)

	var upstreamErr *avatar.UpstreamError
	switch {
	case errors.Is(err, app_errors.ErrValidation):
		respondWithJSON(w, http.StatusBadRequest, VideoErrorResponse{Error: "Text is required for video generation."})
	case errors.Is(err, app_errors.ErrConfig):
		respondWithJSON(w, http.StatusInternalServerError, VideoErrorResponse{
			Error:      "D-ID API key not configured. Please sign up at https://studio.d-id.com/ and add your API key to .env file.",
			NeedsSetup: true,
		})
	case errors.Is(err, app_errors.ErrTimeout):
		respondWithJSON(w, http.StatusInternalServerError, VideoErrorResponse{
			Error: "Video generation timed out. Please try again.",
		})
	case errors.As(err, &upstreamErr):
		message := upstreamErr.Description
		if message == "" {
			message = upstreamErr.Message
		}
		if message == "" {
			message = "Failed to generate video."
		}
		respondWithJSON(w, http.StatusInternalServerError, VideoErrorResponse{
			Error:    message,
			Details:  err.Error(),
			DIDError: upstreamErr.Body,
		})
	default:
		respondWithJSON(w, http.StatusInternalServerError, VideoErrorResponse{
			Error:   "Failed to generate video.",
			Details: err.Error(),
		})
	}
}

// HandleGenerateMotionVideo godoc
// @Summary      Generate a motion-diagram video
// @Description  Extracts motion parameters from a physics question via the model chain and renders the animation locally.
// @Tags         Videos
// @Accept       json
// @Produce      json
// @Param        request  body  GenerateMotionVideoRequest  true  "Physics question"
// @Success      200  {object}  MotionVideoResponse
// @Failure      400  {object}  VideoErrorResponse
// @Failure      500  {object}  VideoErrorResponse
// @Router       /generate-motion-video [post]
func (h *VideoHandler) HandleGenerateMotionVideo(w http.ResponseWriter, r *http.Request) {
	var req GenerateMotionVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, VideoErrorResponse{Error: "Question is required for video generation."})
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, VideoErrorResponse{Error: "Question is required for video generation."})
		return
	}

	videoURL, params, err := h.service.MotionVideo(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, app_errors.ErrValidation) {
			respondWithJSON(w, http.StatusBadRequest, VideoErrorResponse{Error: "Question is required for video generation."})
			return
		}
		slog.Error("Motion video generation failed", "error", err)
		respondWithJSON(w, http.StatusInternalServerError, VideoErrorResponse{
			Error:   "Failed to generate motion video.",
			Details: err.Error(),
		})
		return
	}

	respondWithJSON(w, http.StatusOK, MotionVideoResponse{
		VideoURL: videoURL,
		Message:  "Video generated successfully!",
		Params:   params,
	})
}
