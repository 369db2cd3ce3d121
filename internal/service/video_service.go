package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"clario/backend/internal/avatar"
	app_errors "clario/backend/internal/errors"
	"clario/backend/internal/model"
	"clario/backend/internal/render"
)

// didPlaceholderKey is the sample value shipped in .env templates; treat it
// the same as no credential at all.
const didPlaceholderKey = "your_did_api_key_here"

// AvatarClient is the talking-head surface the video service depends on.
// *avatar.Client satisfies it.
type AvatarClient interface {
	GenerateVideo(ctx context.Context, text string) (*avatar.Talk, error)
}

// VideoService owns the two video flows: avatar talks proxied to the
// upstream API and motion diagrams rendered locally from extracted
// parameters.
type VideoService struct {
	avatar    AvatarClient
	chain     StreamChain
	renderer  render.Renderer
	didKeySet bool
}

func NewVideoService(avatarClient AvatarClient, chain StreamChain, renderer render.Renderer, didAPIKey string) *VideoService {
	return &VideoService{
		avatar:    avatarClient,
		chain:     chain,
		renderer:  renderer,
		didKeySet: didAPIKey != "" && didAPIKey != didPlaceholderKey,
	}
}

// AvatarVideo validates the script and relays it to the avatar API, blocking
// through the poll loop until the asset is ready or the budget runs out.
func (s *VideoService) AvatarVideo(ctx context.Context, text string) (*avatar.Talk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required for video generation", app_errors.ErrValidation)
	}
	if !s.didKeySet {
		return nil, fmt.Errorf("%w: DID_API_KEY not configured", app_errors.ErrConfig)
	}
	return s.avatar.GenerateVideo(ctx, text)
}

// MotionVideo extracts animation parameters from a free-text physics
// question via the fallback chain, then hands them to the render pipeline.
// Exhausting the chain propagates the last model's failure; an unparseable
// reply falls back to the fixed default parameter set instead.
func (s *VideoService) MotionVideo(ctx context.Context, question string) (string, model.MotionParams, error) {
	if strings.TrimSpace(question) == "" {
		return "", model.MotionParams{}, fmt.Errorf("%w: question is required for video generation", app_errors.ErrValidation)
	}

	reply, modelID, err := s.chain.GenerateContent(ctx, motionPrompt(question))
	if err != nil {
		return "", model.MotionParams{}, err
	}
	slog.Info("Extracted motion parameters", "model", modelID)

	params := parseMotionParams(reply)
	videoURL, err := s.renderer.Render(ctx, params)
	if err != nil {
		return "", model.MotionParams{}, fmt.Errorf("could not render motion video: %w", err)
	}
	return videoURL, params, nil
}

// parseMotionParams pulls the first JSON object out of the model's reply.
// Fields the model omitted keep their defaults; a reply with no valid JSON
// object yields the defaults wholesale.
func parseMotionParams(reply string) model.MotionParams {
	params := render.DefaultParams()

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end <= start {
		slog.Warn("Model reply contained no JSON object, using default motion params")
		return render.DefaultParams()
	}

	if err := json.Unmarshal([]byte(reply[start:end+1]), &params); err != nil {
		slog.Warn("Could not parse motion params, using defaults", "error", err)
		return render.DefaultParams()
	}
	return params
}

func motionPrompt(question string) string {
	return fmt.Sprintf(`Analyze this physics question: "%s"

Determine the motion type:
- If the question mentions: projectile, trajectory, angle, thrown, launched, parabola, 2D motion -> motionType = "projectile"
- If the question mentions: straight line, 1D motion, constant acceleration, car, train -> motionType = "linear"

Extract parameters and return ONLY this JSON format (no extra text):
{
  "title": "Brief title max 30 chars",
  "motionType": "projectile",
  "initialVelocity": 20,
  "acceleration": 2,
  "angle": 45,
  "showGraph": true
}

Rules:
- For projectile: initialVelocity default 20, angle default 45
- For linear: initialVelocity default 0, acceleration default 2
- Extract actual values from question if mentioned
- showGraph: true if question asks about graphs

Return JSON only:`, question)
}
