// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/iust/softhub/internal/catalog"
)

// HandleShow prints one software entry with its releases and guide.
func HandleShow(ctx context.Context, env *Env, args Args) error {
	detail, err := fetchDetail(ctx, env, args.Slug)
	if err != nil {
		return err
	}

	if args.JSON {
		var buf bytes.Buffer
		if err := NewJSONResponse("show", detail).Write(&buf); err != nil {
			return err
		}
		out := buf.String()
		if env.Color {
			out = highlightJSON(out, env.theme().IsDark())
		}
		_, err := io.WriteString(env.Out, out)
		return err
	}

	printDetail(env, detail)
	return nil
}

// fetchDetail fetches slug, mapping a missing record to *NotFoundError.
func fetchDetail(ctx context.Context, env *Env, slug string) (*catalog.SoftwareDetail, error) {
	detail := env.Catalog.FetchSoftwareDetail(ctx, slug)
	if detail == nil {
		return nil, &NotFoundError{Resource: "software", ID: slug, Msg: env.Bundle.NotFound}
	}
	return detail, nil
}

func printDetail(env *Env, d *catalog.SoftwareDetail) {
	w, b := env.Out, env.Bundle

	fmt.Fprintln(w, TitleStyle.Render(d.Title))
	fmt.Fprintln(w, RenderSeparator(min(70, GetTerminalWidth())))
	if d.Developer != "" {
		fmt.Fprintln(w, RenderField(b.Developer, d.Developer))
	}
	if d.Category.Title != "" {
		fmt.Fprintln(w, RenderField(b.Category, d.Category.Title))
	}
	fmt.Fprintln(w, RenderField("★", d.Rating.String()))
	fmt.Fprintln(w, RenderField(b.Downloads, b.FormatCount(d.DownloadCount)))
	if d.UpdatedAt != "" {
		fmt.Fprintln(w, RenderField(b.LastUpdate, b.FormatDate(d.UpdatedAt)))
	}
	if d.CoverImage != "" {
		fmt.Fprintln(w, RenderField("Cover", LinkStyle.Render(env.Catalog.ResolveAssetURL(d.CoverImage))))
	}
	if len(d.Tags) > 0 {
		fmt.Fprintln(w, RenderField(b.Tags, strings.Join(d.Tags, ", ")))
	}

	if len(d.Features) > 0 {
		fmt.Fprintln(w, SectionStyle.Render(b.Features))
		for _, f := range d.Features {
			fmt.Fprintln(w, "  • "+f.Text)
		}
	}

	if strings.TrimSpace(d.Description) != "" {
		fmt.Fprintln(w, SectionStyle.Render(b.TabDescription))
		fmt.Fprintln(w, strings.TrimRight(env.renderMarkdown(d.Description), "\n"))
	}

	fmt.Fprintln(w, SectionStyle.Render(b.TabVersions))
	if len(d.Releases) == 0 {
		fmt.Fprintln(w, DimStyle.Render(b.NoReleases))
	}
	for _, r := range d.Releases {
		line := ValueStyle.Bold(true).Render(r.Version)
		if r.Platform != "" {
			line += DimStyle.Render("  " + r.Platform)
		}
		fmt.Fprintln(w, line)
		for _, p := range r.Parts {
			part := fmt.Sprintf("  %s %d", b.Part, p.PartNumber)
			if p.FileSize != "" {
				part += " · " + p.FileSize
			}
			fmt.Fprintln(w, part)
			fmt.Fprintln(w, "    "+LinkStyle.Render(env.Catalog.ResolveAssetURL(p.DownloadURL)))
		}
		if note := strings.TrimSpace(r.SpecificInstallGuide); note != "" {
			fmt.Fprintln(w, WarningStyle.Render("  "+b.InstallNote+" "+note))
		}
	}

	guide := d.InstallationGuide
	if strings.TrimSpace(guide) == "" {
		guide = b.FallbackGuide
	}
	fmt.Fprintln(w, SectionStyle.Render(b.TabGuide))
	fmt.Fprintln(w, strings.TrimRight(env.renderMarkdown(guide), "\n"))
}
