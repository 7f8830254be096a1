// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Category is a top-level grouping of software. Identity is ID.
type Category struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Slug  string  `json:"slug"`
	Icon  *string `json:"icon"`
}

// SoftwareSummary is one entry of the list endpoint.
//
// Category holds the category's display title, not its id. Matching a
// selected Category against summaries must go through the title.
type SoftwareSummary struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Slug             string `json:"slug"`
	CoverImage       string `json:"cover_image"`
	ShortDescription string `json:"short_description"`
	Category         string `json:"category"`
	DownloadCount    int    `json:"download_count"`
	LatestVersion    string `json:"latest_version"`
	Rating           Rating `json:"rating"`
}

// SoftwareList is the list endpoint's envelope. Only the first page the
// server returns is ever used.
type SoftwareList struct {
	Count   int               `json:"count"`
	Results []SoftwareSummary `json:"results"`
}

// CategoryDetail is the nested category object of a detail record.
type CategoryDetail struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Slug  string  `json:"slug"`
	Icon  *string `json:"icon"`
}

// Feature is a single bullet of a detail record.
type Feature struct {
	Text string `json:"text"`
}

// DownloadPart is one downloadable file of a release.
type DownloadPart struct {
	PartNumber  int    `json:"part_number"`
	FileSize    string `json:"file_size"`
	DownloadURL string `json:"download_url"`
}

// Release is one published version of a software entry.
type Release struct {
	ID                   int            `json:"id"`
	Version              string         `json:"version"`
	Platform             string         `json:"platform"`
	SpecificInstallGuide string         `json:"specific_install_guide"`
	Parts                []DownloadPart `json:"parts"`
}

// SoftwareDetail is the full record returned for a single slug.
type SoftwareDetail struct {
	ID                int            `json:"id"`
	Title             string         `json:"title"`
	Slug              string         `json:"slug"`
	CoverImage        string         `json:"cover_image"`
	Description       string         `json:"description"`
	InstallationGuide string         `json:"installation_guide"`
	Developer         string         `json:"developer"`
	Category          CategoryDetail `json:"category"`
	DownloadCount     int            `json:"download_count"`
	Rating            Rating         `json:"rating"`
	Tags              []string       `json:"tags"`
	Features          []Feature      `json:"features"`
	Releases          []Release      `json:"releases"`
	UpdatedAt         string         `json:"updated_at"`
}

// Context describes the record for the assistant prompt.
func (d *SoftwareDetail) Context() string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("User is viewing the software \"%s\". Description: %s.", d.Title, d.Description)
}

// Rating is a score decoded from either a JSON number or a numeric string.
// Decimal fields on the backend serialize as strings depending on settings.
type Rating float64

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*r = 0
			return nil
		}
		data = []byte(s)
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid rating %q: %w", data, err)
	}
	*r = Rating(f)
	return nil
}

// String formats the rating with one decimal.
func (r Rating) String() string {
	return strconv.FormatFloat(float64(r), 'f', 1, 64)
}
