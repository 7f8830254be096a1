// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iust/softhub/internal/catalog"
	"github.com/iust/softhub/internal/util"
	"github.com/iust/softhub/internal/viewstate"
)

// listOutput is the --json payload of list.
type listOutput struct {
	Count    int                       `json:"count"`
	Shown    int                       `json:"shown"`
	Search   string                    `json:"search,omitempty"`
	Category string                    `json:"category"`
	Results  []catalog.SoftwareSummary `json:"results"`
}

// HandleList prints the catalog filtered by --search and --category.
func HandleList(ctx context.Context, env *Env, args Args) error {
	categories, list := env.Catalog.LoadCatalog(ctx)

	filter, err := resolveCategoryFlag(args.Category, categories)
	if err != nil {
		return err
	}
	visible := viewstate.Filter(list.Results, categories, args.Search, filter)
	env.Log.Debug("list filtered", "search", args.Search, "category", filter.String(), "shown", len(visible))

	if args.JSON {
		if visible == nil {
			visible = []catalog.SoftwareSummary{}
		}
		return NewJSONResponse("list", listOutput{
			Count:    list.Count,
			Shown:    len(visible),
			Search:   args.Search,
			Category: filter.String(),
			Results:  visible,
		}).Write(env.Out)
	}

	b := env.Bundle
	if len(visible) == 0 {
		fmt.Fprintln(env.Out, WarningStyle.Render(b.NoResults))
		fmt.Fprintln(env.Out, DimStyle.Render(b.NoResultsHint))
		return nil
	}

	const (
		slugW     = 18
		titleW    = 28
		categoryW = 16
		versionW  = 12
		downW     = 12
	)
	header := util.PadRight("SLUG", slugW) + " " +
		util.PadRight("TITLE", titleW) + " " +
		util.PadRight(strings.ToUpper(b.Category), categoryW) + " " +
		util.PadRight("VERSION", versionW) + " " +
		util.PadRight(strings.ToUpper(b.Downloads), downW) + " " +
		"★"
	fmt.Fprintln(env.Out, DimStyle.Render(header))

	for _, s := range visible {
		fmt.Fprintln(env.Out,
			TitleStyle.Render(util.PadRight(util.Truncate(s.Slug, slugW), slugW))+" "+
				util.PadRight(util.Truncate(s.Title, titleW), titleW)+" "+
				util.PadRight(util.Truncate(s.Category, categoryW), categoryW)+" "+
				util.PadRight(util.Truncate(s.LatestVersion, versionW), versionW)+" "+
				util.PadRight(b.FormatCount(s.DownloadCount), downW)+" "+
				WarningStyle.Render(s.Rating.String()),
		)
	}
	fmt.Fprintln(env.Out, DimStyle.Render(fmt.Sprintf("%s / %s", b.FormatCount(len(visible)), b.FormatCount(list.Count))))
	return nil
}

// resolveCategoryFlag accepts "all", a numeric id, a slug or a title.
// Unknown numeric ids are passed through and fail open in the filter.
func resolveCategoryFlag(value string, categories []catalog.Category) (viewstate.CategoryFilter, error) {
	if f, err := viewstate.ParseCategoryFilter(value); err == nil {
		return f, nil
	}
	value = strings.TrimSpace(value)
	for _, c := range categories {
		if strings.EqualFold(c.Slug, value) || strings.EqualFold(c.Title, value) {
			return viewstate.CategoryID(c.ID), nil
		}
	}
	return viewstate.CategoryFilter{}, fmt.Errorf("unknown category %q", value)
}
