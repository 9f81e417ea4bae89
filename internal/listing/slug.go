package listing

import (
	"regexp"
	"strings"
)

var (
	slugDisallowed  = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	hyphenRun       = regexp.MustCompile(`-+`)
	nonHexCharacter = regexp.MustCompile(`[^0-9a-f]`)
)

// Slugify derives a URL-safe slug from a street address. It is a pure,
// deterministic function of the address string alone; property type and city
// are intentionally not part of it, so slugs stay stable if classification
// logic changes.
func Slugify(address string) string {
	slug := strings.ToLower(address)
	slug = slugDisallowed.ReplaceAllString(slug, "")
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = hyphenRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// ShortIDSuffix reduces a record id to the trailing 8 hex characters used to
// disambiguate slugs for colliding addresses. Non-hex characters (UUID
// hyphens, MLS number prefixes) are stripped first. Returns the whole
// remainder when fewer than 8 hex characters survive.
func ShortIDSuffix(id string) string {
	hexOnly := nonHexCharacter.ReplaceAllString(strings.ToLower(id), "")
	if len(hexOnly) <= 8 {
		return hexOnly
	}
	return hexOnly[len(hexOnly)-8:]
}

// CanonicalSlug builds the full public slug: the address slug plus the
// short id suffix. Uniqueness is by convention only; the resolver's fuzzy
// fallback tolerates collisions.
func CanonicalSlug(address, id string) string {
	base := Slugify(address)
	suffix := ShortIDSuffix(id)
	switch {
	case base == "":
		return suffix
	case suffix == "":
		return base
	default:
		return base + "-" + suffix
	}
}
