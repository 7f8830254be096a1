// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewstate

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/iust/softhub/internal/catalog"
)

// CategoryFilter is either "All" or a single category id.
type CategoryFilter struct {
	all bool
	id  int
}

// AllCategories is the filter that lets every category through.
func AllCategories() CategoryFilter {
	return CategoryFilter{all: true}
}

// CategoryID filters to the category with the given id.
func CategoryID(id int) CategoryFilter {
	return CategoryFilter{id: id}
}

// IsAll reports whether f is the "All" filter. The zero value is not.
func (f CategoryFilter) IsAll() bool {
	return f.all
}

// ID returns the category id and false for the "All" filter.
func (f CategoryFilter) ID() (int, bool) {
	return f.id, !f.all
}

// String returns "All" or the numeric id.
func (f CategoryFilter) String() string {
	if f.all {
		return "All"
	}
	return strconv.Itoa(f.id)
}

// ParseCategoryFilter accepts "All" (any case), "" or a numeric id.
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllCategories(), nil
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return CategoryFilter{}, err
	}
	return CategoryID(id), nil
}

// Filter returns the summaries matching term and filter, in their
// original order. The input slices are not modified.
//
// Titles are compared under Unicode case folding, so "ss" also matches
// "ß". The short description is matched case-sensitively.
func Filter(software []catalog.SoftwareSummary, categories []catalog.Category, term string, filter CategoryFilter) []catalog.SoftwareSummary {
	wantTitle, restrict := resolveCategory(categories, filter)

	folder := cases.Fold()
	foldedTerm := folder.String(term)

	out := make([]catalog.SoftwareSummary, 0, len(software))
	for _, s := range software {
		matchesTerm := strings.Contains(folder.String(s.Title), foldedTerm) ||
			strings.Contains(s.ShortDescription, term)
		if !matchesTerm {
			continue
		}
		if restrict && s.Category != wantTitle {
			continue
		}
		out = append(out, s)
	}
	return out
}

// resolveCategory maps the filter to the title summaries are compared
// against. restrict is false for "All" and for ids that are not loaded.
func resolveCategory(categories []catalog.Category, filter CategoryFilter) (title string, restrict bool) {
	id, ok := filter.ID()
	if !ok {
		return "", false
	}
	for _, c := range categories {
		if c.ID == id {
			return c.Title, true
		}
	}
	return "", false
}
