// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"fmt"
	"strings"
)

// Theme is the persisted color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("invalid theme %q, must be light or dark", s)
	}
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// LoadTheme returns the saved theme, or asks detectDark when nothing valid
// is saved. detectDark may be nil, meaning light.
func LoadTheme(store Store, detectDark func() bool) Theme {
	if store != nil {
		if saved, ok := store.Get(KeyTheme); ok {
			if t, err := ParseTheme(saved); err == nil {
				return t
			}
		}
	}
	if detectDark != nil && detectDark() {
		return ThemeDark
	}
	return ThemeLight
}

// SaveTheme persists t.
func SaveTheme(store Store, t Theme) error {
	return store.Set(KeyTheme, string(t))
}
