// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewstate

import (
	"github.com/iust/softhub/internal/catalog"
)

// Page identifies which screen is active.
type Page int

const (
	PageList Page = iota
	PageDetail
)

// String returns the page name.
func (p Page) String() string {
	switch p {
	case PageList:
		return "list"
	case PageDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Generation identifies one detail request. Only the most recent one may
// be applied.
type Generation uint64

// Controller holds the view state of the catalog screens.
type Controller struct {
	categories []catalog.Category
	software   []catalog.SoftwareSummary
	total      int
	loaded     bool

	search string
	filter CategoryFilter

	page         Page
	slug         string
	generation   Generation
	detail       *catalog.SoftwareDetail
	detailLoaded bool
}

// New creates a Controller on the list page with no filters.
func New() *Controller {
	return &Controller{
		filter: AllCategories(),
		page:   PageList,
	}
}

// =============================================================================
// CATALOG DATA
// =============================================================================

// SetCatalog installs a freshly loaded catalog and marks it loaded.
func (c *Controller) SetCatalog(categories []catalog.Category, list catalog.SoftwareList) {
	c.categories = categories
	c.software = list.Results
	c.total = list.Count
	c.loaded = true
}

// Loaded reports whether SetCatalog has been called.
func (c *Controller) Loaded() bool {
	return c.loaded
}

// Categories returns the loaded categories.
func (c *Controller) Categories() []catalog.Category {
	return c.categories
}

// Software returns every loaded summary, unfiltered.
func (c *Controller) Software() []catalog.SoftwareSummary {
	return c.software
}

// Total is the count reported by the list endpoint.
func (c *Controller) Total() int {
	return c.total
}

// =============================================================================
// FILTERS
// =============================================================================

// SetSearchTerm replaces the search term. "" matches everything.
func (c *Controller) SetSearchTerm(term string) {
	c.search = term
}

// SearchTerm returns the current search term.
func (c *Controller) SearchTerm() string {
	return c.search
}

// SelectCategory replaces the category filter.
func (c *Controller) SelectCategory(f CategoryFilter) {
	c.filter = f
}

// SelectedCategory returns the current category filter.
func (c *Controller) SelectedCategory() CategoryFilter {
	return c.filter
}

// CycleCategory moves the filter delta steps through All followed by the
// loaded categories, wrapping at both ends. A filter whose id is not loaded
// restarts from All.
func (c *Controller) CycleCategory(delta int) CategoryFilter {
	n := len(c.categories) + 1
	pos := 0
	if id, ok := c.filter.ID(); ok {
		for i, cat := range c.categories {
			if cat.ID == id {
				pos = i + 1
				break
			}
		}
	}
	pos = ((pos+delta)%n + n) % n
	if pos == 0 {
		c.filter = AllCategories()
	} else {
		c.filter = CategoryID(c.categories[pos-1].ID)
	}
	return c.filter
}

// VisibleSoftware returns the summaries that pass the current filters.
func (c *Controller) VisibleSoftware() []catalog.SoftwareSummary {
	return Filter(c.software, c.categories, c.search, c.filter)
}

// =============================================================================
// PAGES
// =============================================================================

// Page returns the active page.
func (c *Controller) Page() Page {
	return c.page
}

// ActiveSlug returns the slug shown on the detail page, or "".
func (c *Controller) ActiveSlug() string {
	return c.slug
}

// EnterDetail switches to the detail page for slug and returns the
// generation the caller must present with the fetched record.
func (c *Controller) EnterDetail(slug string) Generation {
	c.page = PageDetail
	c.slug = slug
	c.detail = nil
	c.detailLoaded = false
	c.generation++
	return c.generation
}

// LeaveDetail returns to the list page. Any detail request still in flight
// becomes stale.
func (c *Controller) LeaveDetail() {
	c.page = PageList
	c.slug = ""
	c.detail = nil
	c.detailLoaded = false
	c.generation++
}

// IsCurrent reports whether gen belongs to the active detail request.
func (c *Controller) IsCurrent(gen Generation) bool {
	return c.page == PageDetail && gen == c.generation
}

// ApplyDetail records the result of the request identified by gen. A nil
// detail means not found. Stale results are ignored and false is returned.
func (c *Controller) ApplyDetail(gen Generation, detail *catalog.SoftwareDetail) bool {
	if !c.IsCurrent(gen) {
		return false
	}
	c.detail = detail
	c.detailLoaded = true
	return true
}

// Detail returns the active record; nil while loading or when not found.
func (c *Controller) Detail() *catalog.SoftwareDetail {
	return c.detail
}

// DetailLoaded reports whether the active request has completed.
func (c *Controller) DetailLoaded() bool {
	return c.detailLoaded
}
