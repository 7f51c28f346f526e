// Package format renders dates and labels for display.
package format

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultLang = "en-US"

// Tag parses lang, falling back to American English.
func Tag(lang string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil || tag == language.Und {
		return language.AmericanEnglish
	}
	return tag
}

// Date formats t in a short, month-abbreviated form.
// Example: Date(t, "en-US") => "Jan 15, 2025"
func Date(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}

	tag := Tag(lang)
	base, _ := tag.Base()
	region, _ := tag.Region()

	switch base.String() {
	case "ja", "zh", "ko":
		return t.Format("2006-01-02")
	case "en":
		if region.String() == "US" || region.String() == "ZZ" {
			return t.Format("Jan 2, 2006")
		}
		return t.Format("2 Jan 2006")
	default:
		return t.Format("2 Jan 2006")
	}
}

// Badge upper-cases a slug for use as a badge label: "dynamic-programming"
// becomes "DYNAMIC PROGRAMMING".
func Badge(slug, lang string) string {
	return cases.Upper(Tag(lang)).String(strings.ReplaceAll(slug, "-", " "))
}

// Label title-cases a slug for use on a control: "two-pointers" becomes
// "Two Pointers".
func Label(slug, lang string) string {
	return cases.Title(Tag(lang)).String(strings.ReplaceAll(slug, "-", " "))
}
