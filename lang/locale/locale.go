// Package locale provides the small, embedded locale catalog backing the
// AvailableLocales/Characters/Chr and case-folding system calls. No ICU
// or other locale-data library is used anywhere in this module, so the
// catalog is a plain YAML file loaded with gopkg.in/yaml.v3, not a
// binding to an external locale database; see DESIGN.md.
package locale

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Entry describes one locale tag in the catalog.
type Entry struct {
	Tag  string `yaml:"tag"`
	Name string `yaml:"name"`
}

type catalog struct {
	Locales []Entry `yaml:"locales"`
}

var loaded = func() catalog {
	var c catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		panic(fmt.Sprintf("locale: invalid embedded catalog: %v", err))
	}
	return c
}()

// AvailableLocales returns every locale tag in the catalog, sorted.
func AvailableLocales() []string {
	tags := make([]string, len(loaded.Locales))
	for i, e := range loaded.Locales {
		tags[i] = e.Tag
	}
	sort.Strings(tags)
	return tags
}

// Known reports whether tag names a locale in the catalog.
func Known(tag string) bool {
	for _, e := range loaded.Locales {
		if strings.EqualFold(e.Tag, tag) {
			return true
		}
	}
	return false
}

// Characters segments s into its constituent "characters". The catalog
// carries no per-locale grapheme-cluster segmentation tables, so every
// locale currently segments by rune via unicode/utf8; this is a
// simplification from true locale-aware grapheme segmentation (e.g. a
// flag emoji or combining accent would split here), documented in
// DESIGN.md.
func Characters(locale, s string) []string {
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Chr returns the single-character string for the given Unicode code
// point, the inverse of the string Asc built-in. It returns "" for a
// negative code or one above utf8.MaxRune.
func Chr(code int64) string {
	if code < 0 || code > utf8.MaxRune {
		return ""
	}
	return string(rune(code))
}

// ToUpper upper-cases s. Turkish's dotless/dotted I distinction is the one
// case-folding rule in the catalog that differs from the default
// (strings.ToUpper); every other locale shares the default Unicode
// case-fold.
func ToUpper(loc, s string) string {
	if strings.EqualFold(loc, "tr-TR") {
		return strings.ToUpper(strings.Map(func(r rune) rune {
			if r == 'i' {
				return 'İ'
			}
			return r
		}, s))
	}
	return strings.ToUpper(s)
}

// ToLower lower-cases s, with the same Turkish carve-out as ToUpper.
func ToLower(loc, s string) string {
	if strings.EqualFold(loc, "tr-TR") {
		return strings.ToLower(strings.Map(func(r rune) rune {
			if r == 'I' {
				return 'ı'
			}
			return r
		}, s))
	}
	return strings.ToLower(s)
}

// CompareString orders a and b, returning -1, 0 or 1. Collation is a plain
// byte-wise comparison of the locale-folded strings; see the catalog's
// doc comment for why tailored collation isn't implemented.
func CompareString(loc, a, b string) int {
	fa, fb := ToLower(loc, a), ToLower(loc, b)
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	default:
		return 0
	}
}
