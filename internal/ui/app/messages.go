// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/iust/softhub/internal/catalog"
	"github.com/iust/softhub/internal/chat"
	"github.com/iust/softhub/internal/viewstate"
)

// catalogLoadedMsg carries the result of LoadCatalog. Failed halves are
// already degraded to empty values.
type catalogLoadedMsg struct {
	categories []catalog.Category
	list       catalog.SoftwareList
}

// detailLoadedMsg carries a detail fetch tagged with the generation that
// requested it. A nil detail means not found.
type detailLoadedMsg struct {
	gen    viewstate.Generation
	detail *catalog.SoftwareDetail
}

// chatReplyMsg completes a round trip started on conv.
type chatReplyMsg struct {
	conv  *chat.Controller
	reply string
}

// prefChangedMsg reports a preference changed outside this process.
type prefChangedMsg struct {
	key   string
	value string
}

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	url string
	err error
}
