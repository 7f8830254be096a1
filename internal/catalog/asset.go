// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import "strings"

// absolutePrefixes are the schemes that pass through ResolveAssetURL as-is.
var absolutePrefixes = []string{"http://", "https://", "data:"}

// ResolveAssetURL turns a media path from the API into an absolute URL.
// Empty input yields "", absolute URLs are returned unchanged and anything
// else is joined onto the client's origin.
func (c *Client) ResolveAssetURL(path string) string {
	return ResolveAssetURL(c.baseURL, path)
}

// ResolveAssetURL is the package-level form of Client.ResolveAssetURL.
func ResolveAssetURL(origin, path string) string {
	if path == "" {
		return ""
	}
	lower := strings.ToLower(path)
	for _, prefix := range absolutePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return path
		}
	}
	origin = strings.TrimRight(origin, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return origin + path
}
