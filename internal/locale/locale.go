// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package locale holds every user-facing string and the number and date
// formatting rules for the supported languages.
package locale

import (
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Bundle is the set of strings and formatters for one language.
type Bundle struct {
	Tag language.Tag

	// Assistant
	Persona    string
	Preamble   string
	MissingKey string
	EmptyReply string
	Failure    string
	Greeting   string

	// Listing
	AppTitle      string
	AppSubtitle   string
	All           string
	SearchHint    string
	Loading       string
	NoResults     string
	NoResultsHint string
	Downloads     string

	// Detail
	Back             string
	NotFound         string
	TabVersions      string
	TabDescription   string
	TabGuide         string
	LastUpdate       string
	Part             string
	InstallNote      string
	NoReleases       string
	FallbackGuide    string
	BrokenLinkNotice string
	Developer        string
	Category         string
	Tags             string
	Features         string
	Copied           string

	// Assistant panel
	AssistantTitle string
	AssistantHint  string
	Thinking       string
}

var persian = &Bundle{
	Tag: language.Persian,

	Persona:    "You are an expert IT administrator for a university. Be concise, helpful, and polite. Always answer in Persian.",
	Preamble:   "You are a helpful university software assistant for Persian speaking students. Answer in Persian (Farsi).",
	MissingKey: "خطا: کلید API یافت نشد.",
	EmptyReply: "متاسفانه پاسخی دریافت نشد.",
	Failure:    "متاسفانه در برقراری ارتباط با هوش مصنوعی خطایی رخ داد.",
	Greeting:   "سلام! من دستیار هوشمند SSH هستم. چطور می‌تونم کمکت کنم؟",

	AppTitle:      "مرکز نرم‌افزار",
	AppSubtitle:   "دانشگاه علم و صنعت ایران",
	All:           "همه",
	SearchHint:    "جستجو در نرم‌افزارهای دانشگاه...",
	Loading:       "در حال بارگذاری...",
	NoResults:     "نتیجه‌ای یافت نشد",
	NoResultsHint: "لطفا عبارت جستجو یا دسته‌بندی را تغییر دهید.",
	Downloads:     "دانلود",

	Back:             "بازگشت به صفحه اصلی",
	NotFound:         "نرم‌افزار یافت نشد",
	TabVersions:      "لینک‌های دانلود",
	TabDescription:   "توضیحات کامل",
	TabGuide:         "راهنمای نصب",
	LastUpdate:       "آخرین بروزرسانی",
	Part:             "پارت",
	InstallNote:      "نکته نصب این نسخه:",
	NoReleases:       "هیچ نسخه دانلودی برای این نرم‌افزار یافت نشد.",
	FallbackGuide:    "راهنمای نصب اختصاصی برای این نرم‌افزار ثبت نشده است. معمولاً کافیست فایل را از حالت فشرده خارج کرده و فایل Setup را اجرا کنید.",
	BrokenLinkNotice: "در صورت خرابی لینک‌ها، لطفا از طریق دستیار هوشمند به ما اطلاع دهید.",
	Developer:        "توسعه‌دهنده",
	Category:         "دسته‌بندی",
	Tags:             "برچسب‌ها",
	Features:         "ویژگی‌ها",
	Copied:           "لینک کپی شد",

	AssistantTitle: "دستیار هوشمند",
	AssistantHint:  "سوالی دارید؟...",
	Thinking:       "در حال فکر کردن...",
}

var english = &Bundle{
	Tag: language.English,

	Persona:    "You are an expert IT administrator for a university. Be concise, helpful, and polite. Always answer in English.",
	Preamble:   "You are a helpful university software assistant for students. Answer in English.",
	MissingKey: "Error: API key not found.",
	EmptyReply: "Sorry, no reply was received.",
	Failure:    "Sorry, something went wrong while contacting the assistant.",
	Greeting:   "Hi! I'm the SSH smart assistant. How can I help?",

	AppTitle:      "Software Center",
	AppSubtitle:   "Iran University of Science and Technology",
	All:           "All",
	SearchHint:    "Search university software...",
	Loading:       "Loading...",
	NoResults:     "No results found",
	NoResultsHint: "Try a different search term or category.",
	Downloads:     "downloads",

	Back:             "Back to the list",
	NotFound:         "Software not found",
	TabVersions:      "Downloads",
	TabDescription:   "Description",
	TabGuide:         "Install guide",
	LastUpdate:       "Last update",
	Part:             "Part",
	InstallNote:      "Install note for this release:",
	NoReleases:       "No downloadable releases were found for this software.",
	FallbackGuide:    "No specific install guide has been provided. Usually you only need to extract the archive and run Setup.",
	BrokenLinkNotice: "If a link is broken, please let us know through the assistant.",
	Developer:        "Developer",
	Category:         "Category",
	Tags:             "Tags",
	Features:         "Features",
	Copied:           "Link copied",

	AssistantTitle: "Smart assistant",
	AssistantHint:  "Any questions?...",
	Thinking:       "Thinking...",
}

var matcher = language.NewMatcher([]language.Tag{language.Persian, language.English})

// For returns the bundle that best matches tag. Unknown or empty tags get
// Persian, the portal's language.
func For(tag string) *Bundle {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return persian
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return persian
	}
	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return persian
	}
	if index == 1 {
		return english
	}
	return persian
}

// Supported lists the accepted locale codes.
func Supported() []string {
	return []string{"fa", "en"}
}

// Prompt builds the user prompt sent with every assistant question.
func (b *Bundle) Prompt(query, context string) string {
	prompt := b.Preamble + "\nThe user is asking: " + query
	if context != "" {
		prompt += "\n\nContext about the current software page: " + context
	}
	return prompt
}

// FormatCount formats n with the language's digit grouping and numerals.
func (b *Bundle) FormatCount(n int) string {
	return message.NewPrinter(b.Tag).Sprintf("%d", n)
}

// FormatDate renders a timestamp from the API as a short local date.
// Unparseable input is returned unchanged.
func (b *Bundle) FormatDate(raw string) string {
	t, ok := parseTimestamp(raw)
	if !ok {
		return raw
	}
	if b.Tag == language.Persian {
		pt := ptime.New(t.In(ptime.Iran()))
		return persianDigits.Replace(pt.Format("yyyy/M/d"))
	}
	return t.Format("2006-01-02")
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var persianDigits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)
