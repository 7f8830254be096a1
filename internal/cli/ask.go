// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"
)

// askOutput is the --json payload of ask.
type askOutput struct {
	Query string `json:"query"`
	Slug  string `json:"slug,omitempty"`
	Reply string `json:"reply"`
}

// HandleAsk sends one question to the assistant and prints the reply.
// With --slug the software page is sent as context.
func HandleAsk(ctx context.Context, env *Env, args Args) error {
	contextText, err := slugContext(ctx, env, args.Slug)
	if err != nil {
		return err
	}

	reply := env.Assistant.Ask(ctx, args.Query, contextText)

	if args.JSON {
		return NewJSONResponse("ask", askOutput{
			Query: args.Query,
			Slug:  args.Slug,
			Reply: reply,
		}).Write(env.Out)
	}

	fmt.Fprintln(env.Out, strings.TrimRight(env.renderMarkdown(reply), "\n"))
	return nil
}

// slugContext returns the assistant context for slug, or "" without one.
func slugContext(ctx context.Context, env *Env, slug string) (string, error) {
	if slug == "" {
		return "", nil
	}
	detail, err := fetchDetail(ctx, env, slug)
	if err != nil {
		return "", err
	}
	return detail.Context(), nil
}
