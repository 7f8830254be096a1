// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/iust/softhub/internal/chat"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides line editing and in-memory history for the chat REPL.
type ChatCLI struct {
	line *liner.State
}

// NewChatCLI takes over the terminal for line editing.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &ChatCLI{line: line}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close restores the terminal.
func (c *ChatCLI) Close() {
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// readFunc reads one line for the REPL.
type readFunc func(prompt string) (string, error)

const chatHelp = `Commands:
  /context   Show the software context sent with each question
  /history   Show the conversation so far
  /help      Show this help
  /exit      Leave the chat (also Ctrl+C, Ctrl+D)`

// HandleChat runs an interactive conversation with the assistant.
func HandleChat(ctx context.Context, env *Env, args Args) error {
	contextText, err := slugContext(ctx, env, args.Slug)
	if err != nil {
		return err
	}
	conv := newConversation(env, contextText)

	input := NewChatCLI()
	defer input.Close()
	return runChat(ctx, env, conv, input.ReadInput)
}

// runChat is the REPL loop. It returns nil when the user leaves.
func runChat(ctx context.Context, env *Env, conv *chat.Controller, read readFunc) error {
	w := env.Out
	b := env.Bundle

	fmt.Fprintln(w, TitleStyle.Render(b.AssistantTitle))
	printReply(env, conv.Transcript()[0])
	fmt.Fprintln(w, DimStyle.Render("/help"))

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := read(PromptStyle.Render("softhub> "))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(w)
				return nil
			}
			return &CommandError{Command: "chat", Action: "read input", Err: err}
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "/exit" || line == "/quit":
			return nil
		case line == "/help":
			fmt.Fprintln(w, chatHelp)
			continue
		case line == "/context":
			if conv.Context() == "" {
				fmt.Fprintln(w, DimStyle.Render("(none)"))
			} else {
				fmt.Fprintln(w, conv.Context())
			}
			continue
		case line == "/history":
			fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("(%d messages)", conv.Len())))
			for _, msg := range conv.Transcript() {
				fmt.Fprintf(w, "%s %s\n", DimStyle.Render("["+msg.Role.String()+"]"), msg.Content)
			}
			continue
		}

		fmt.Fprintln(env.Err, DimStyle.Render(b.Thinking))
		if !conv.Send(ctx, line) {
			continue
		}
		transcript := conv.Transcript()
		printReply(env, transcript[len(transcript)-1])
	}
}

func newConversation(env *Env, contextText string) *chat.Controller {
	return chat.New(env.Assistant, contextText, env.Bundle.Greeting)
}

func printReply(env *Env, msg chat.Message) {
	fmt.Fprintln(env.Out, strings.TrimRight(env.renderMarkdown(msg.Content), "\n"))
}
