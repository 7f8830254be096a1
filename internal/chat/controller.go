// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"sync"
)

// State is the controller's position in a round trip.
type State int

const (
	StateIdle State = iota
	StateWaiting
)

// String returns the state name.
func (s State) String() string {
	if s == StateWaiting {
		return "waiting"
	}
	return "idle"
}

// Asker answers one question given a context string.
type Asker interface {
	Ask(ctx context.Context, query, contextText string) string
}

// Controller owns a transcript and serializes round trips to an Asker.
// It is safe for concurrent use.
type Controller struct {
	asker       Asker
	contextText string

	mu         sync.Mutex
	state      State
	transcript []Message
}

// New creates an idle controller whose transcript holds greeting.
// contextText is sent with every question.
func New(asker Asker, contextText, greeting string) *Controller {
	return &Controller{
		asker:       asker,
		contextText: contextText,
		state:       StateIdle,
		transcript:  []Message{NewMessage(RoleAssistant, greeting)},
	}
}

// Send runs one full round trip and reports whether text was accepted.
// It blocks until the reply has been appended.
func (c *Controller) Send(ctx context.Context, text string) bool {
	query, ok := c.Begin(text)
	if !ok {
		return false
	}
	c.Complete(c.Ask(ctx, query))
	return true
}

// Begin appends text as a user message and enters the waiting state. It
// returns false, changing nothing, for blank text or while waiting.
func (c *Controller) Begin(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateWaiting {
		return "", false
	}
	c.transcript = append(c.transcript, NewMessage(RoleUser, text))
	c.state = StateWaiting
	return text, true
}

// Ask forwards query to the asker with the controller's context. It does
// not touch the transcript.
func (c *Controller) Ask(ctx context.Context, query string) string {
	return c.asker.Ask(ctx, query, c.contextText)
}

// Complete appends reply and returns to idle. It is a no-op unless a round
// trip is pending.
func (c *Controller) Complete(reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateWaiting {
		return
	}
	c.transcript = append(c.transcript, NewMessage(RoleAssistant, reply))
	c.state = StateIdle
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Waiting reports whether a reply is pending.
func (c *Controller) Waiting() bool {
	return c.State() == StateWaiting
}

// Context returns the context string sent with every question.
func (c *Controller) Context() string {
	return c.contextText
}

// Transcript returns a copy of the messages in order.
func (c *Controller) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Len returns the number of messages.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.transcript)
}
