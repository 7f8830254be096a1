// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant answers single questions about the catalog through a
// hosted language model.
//
// Ask never fails from the caller's point of view: a missing credential,
// a transport error or an empty completion each map to a fixed localized
// string, so the chat stays usable. Calls are stateless; the transcript the
// user sees is kept by package chat and is never sent to the model.
//
// # Key Types
//
//   - Client: builds the prompt and maps failures to localized strings
//   - Generator: one text completion against some provider
//   - GeminiGenerator: Google Gemini via google.golang.org/genai
//   - OpenRouterGenerator: any OpenAI-compatible chat completions endpoint
package assistant
