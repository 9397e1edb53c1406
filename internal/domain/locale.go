package domain

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// Locale is a BCP-47-like tag such as "en-US" or "zh-Hans". The region
// subtag, when present, is two uppercase letters.
type Locale string

// StorefrontCountry is the two-letter lowercase region code the store
// lookup APIs use to select a regional catalog.
type StorefrontCountry string

// language, optional 4-letter script, optional 2-uppercase-letter region.
var localeRe = regexp.MustCompile(`^[A-Za-z]{2,8}(-[A-Za-z]{4})?(-[A-Z]{2})?$`)

// ParseLocale validates a locale tag. Tags that do not match the required
// shape, or that the BCP-47 parser rejects, fail with InvalidLocaleError.
func ParseLocale(tag string) (Locale, error) {
	if !localeRe.MatchString(tag) {
		return "", &InvalidLocaleError{Tag: tag}
	}
	if _, err := language.Parse(tag); err != nil {
		return "", &InvalidLocaleError{Tag: tag}
	}
	return Locale(tag), nil
}

// Region returns the locale's explicit region subtag, lowercased, or ""
// when the tag carries none. Regions the BCP-47 parser merely infers from
// the language (e.g. "US" for a bare "en") do not count.
func (l Locale) Region() string {
	tag, err := language.Parse(string(l))
	if err != nil {
		return ""
	}
	region, conf := tag.Region()
	if conf != language.Exact {
		return ""
	}
	return strings.ToLower(region.String())
}

// ResolveStorefront maps a locale to the storefront country used for
// lookups. An explicit override always wins; otherwise the locale's region
// subtag decides, and region-less tags fall back to defaultCountry.
func ResolveStorefront(loc Locale, override string, defaultCountry StorefrontCountry) StorefrontCountry {
	if override != "" {
		return StorefrontCountry(strings.ToLower(override))
	}
	if r := loc.Region(); r != "" {
		return StorefrontCountry(r)
	}
	return defaultCountry
}
