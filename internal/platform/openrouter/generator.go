package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gowombat/doodle-api/internal/config"
	"github.com/gowombat/doodle-api/internal/generation"
)

const (
	refererHeader = "https://github.com/gowombat/doodle-api"
	titleHeader   = "GoWombat Doodle Generator"

	// Sampling parameters are fixed for doodle generation.
	temperature = 0.8
	maxTokens   = 1000
)

// Generator implements generation.Generator using OpenRouter's
// chat-completions endpoint as the image source.
type Generator struct {
	logger  *slog.Logger
	cfg     config.OpenRouterConfig
	client  *http.Client
	timeout time.Duration
}

// NewGenerator creates a Generator from the upstream configuration.
//
// Returns generation.ErrInvalidConfig when the API key, base URL, model or
// timeout is missing.
func NewGenerator(logger *slog.Logger, cfg config.OpenRouterConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive", generation.ErrInvalidConfig)
	}

	return &Generator{
		logger:  logger,
		cfg:     cfg,
		client:  &http.Client{},
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil
}

// Ensure Generator implements the generation.Generator interface
var _ generation.Generator = (*Generator)(nil)

// GenerateDoodle builds the prompt, issues one POST to the upstream and
// normalizes whatever comes back. Every exit path returns a Result carrying
// the elapsed wall-clock time; no fault escapes as an error.
func (g *Generator) GenerateDoodle(ctx context.Context, occasion string, styleHint string) *generation.Result {
	start := time.Now()
	finish := func(r *generation.Result) *generation.Result {
		r.Elapsed = time.Since(start)
		return r
	}

	prompt := generation.BuildPrompt(occasion, styleHint)
	g.logger.DebugContext(ctx, "prompt built",
		"occasion_length", len(occasion),
		"prompt_length", len(prompt),
		"has_style_hint", styleHint != "")

	body, err := json.Marshal(chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Modalities:  []string{"image", "text"},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return finish(unexpectedFailure(err))
	}

	// The upstream call is the only suspension point; bound it.
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(
		callCtx,
		http.MethodPost,
		g.cfg.BaseURL+"/chat/completions",
		bytes.NewReader(body),
	)
	if err != nil {
		return finish(unexpectedFailure(err))
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", refererHeader)
	req.Header.Set("X-Title", titleHeader)

	resp, err := g.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			g.logger.WarnContext(ctx, "generation timed out",
				"timeout_seconds", g.cfg.TimeoutSeconds)
			return finish(generation.Failure(generation.FailureTimeout, generation.ReasonTimeout))
		}
		g.logger.ErrorContext(ctx, "upstream request failed", "error", err)
		return finish(unexpectedFailure(err))
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			g.logger.Warn("failed to close upstream response body", "error", closeErr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return finish(generation.Failure(generation.FailureTimeout, generation.ReasonTimeout))
		}
		return finish(unexpectedFailure(err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail := strings.TrimSpace(string(raw))
		var envelope errorEnvelope
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error.Message != "" {
			detail = envelope.Error.Message
		}
		g.logger.WarnContext(ctx, "upstream returned an error",
			"status_code", resp.StatusCode)
		return finish(generation.Failure(
			generation.FailureUpstream,
			fmt.Sprintf("API Error (%d): %s", resp.StatusCode, detail),
		))
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		g.logger.ErrorContext(ctx, "upstream response was not valid JSON", "error", err)
		return finish(unexpectedFailure(err))
	}

	result := finish(Normalize(payload))
	if result.Succeeded() {
		g.logger.InfoContext(ctx, "doodle generated",
			"image_kind", imageKind(result),
			"elapsed_ms", result.Elapsed.Milliseconds())
	} else {
		g.logger.WarnContext(ctx, "no image in upstream response",
			"elapsed_ms", result.Elapsed.Milliseconds())
	}
	return result
}

// unexpectedFailure wraps transport and encode/decode faults in the
// catch-all failure shape.
func unexpectedFailure(err error) *generation.Result {
	return generation.Failure(generation.FailureUnexpected, "Unexpected error: "+err.Error())
}

// isTimeout reports whether a request error was caused by the per-call
// deadline rather than some other transport fault.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// imageKind names the populated side of a successful result for logging.
func imageKind(r *generation.Result) string {
	if r.ImageBase64 != "" {
		return "base64"
	}
	return "url"
}
