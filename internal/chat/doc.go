// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat keeps the assistant transcript for one catalog entry.
//
// A Controller alternates between two states. It starts idle with a single
// assistant greeting. A send appends the user's message, waits for the
// asker, appends the reply and returns to idle. Sends that arrive while a
// reply is pending are ignored, as are blank ones. Messages are never edited
// or removed.
//
// Event loops that cannot block use the split form:
//
//	query, ok := ctrl.Begin(input)   // append user message, enter waiting
//	reply := ctrl.Ask(ctx, query)    // off the loop, e.g. in a tea.Cmd
//	ctrl.Complete(reply)             // append reply, back to idle
//
// Everything else calls Send, which does all three.
package chat
