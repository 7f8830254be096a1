// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iust/softhub/internal/locale"
	"github.com/iust/softhub/internal/logging"
)

// Provider names accepted in configuration.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrNotConfigured is returned by NewGenerator when no API key is set.
var ErrNotConfigured = errors.New("assistant API key not configured")

// Generator produces one completion for a system instruction and prompt.
type Generator interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

// Config selects and configures a Generator.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

// NewGenerator builds the Generator named by cfg.Provider. It returns
// ErrNotConfigured when cfg.APIKey is empty.
func NewGenerator(ctx context.Context, cfg Config) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		return NewGeminiGenerator(ctx, cfg)
	case ProviderOpenRouter:
		return NewOpenRouterGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("unknown assistant provider %q", cfg.Provider)
	}
}

// Client answers questions with a fixed persona in one language.
type Client struct {
	gen    Generator
	bundle *locale.Bundle
	log    *logging.Logger
}

// NewClient creates a Client. A nil gen is valid and makes every Ask return
// the missing-key string.
func NewClient(gen Generator, bundle *locale.Bundle, log *logging.Logger) *Client {
	if bundle == nil {
		bundle = locale.For("")
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Client{gen: gen, bundle: bundle, log: log.With("component", "assistant")}
}

// Configured reports whether a generator is available.
func (c *Client) Configured() bool {
	return c.gen != nil
}

// Ask sends query, with contextText describing the page the user is on
// (may be empty), and returns the reply or a localized error string.
func (c *Client) Ask(ctx context.Context, query, contextText string) string {
	if c.gen == nil {
		c.log.Warn("assistant called without an API key")
		return c.bundle.MissingKey
	}

	start := time.Now()
	reply, err := c.gen.GenerateText(ctx, c.bundle.Persona, c.bundle.Prompt(query, contextText))
	if err != nil {
		c.log.Error("assistant request failed", "error", err, "duration", time.Since(start))
		return c.bundle.Failure
	}
	if strings.TrimSpace(reply) == "" {
		c.log.Warn("assistant returned an empty reply", "duration", time.Since(start))
		return c.bundle.EmptyReply
	}

	c.log.Debug("assistant replied", "chars", len(reply), "duration", time.Since(start))
	return reply
}
