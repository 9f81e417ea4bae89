package listing

import "strings"

// Canonical property type categories.
const (
	TypeDetached  = "detached"
	TypeCondo     = "condo"
	TypeTownhouse = "townhouse"
	TypeLot       = "lot"
	TypeMultiRes  = "multi-res"
)

// typeSynonyms maps each canonical category to the raw feed spellings that
// belong to it. Order matters: more specific categories come first so that
// "Townhouse" is not swallowed by the "house" synonym of detached.
var typeSynonyms = []struct {
	canonical string
	synonyms  []string
}{
	{TypeTownhouse, []string{"townhouse", "townhome", "row"}},
	{TypeMultiRes, []string{"multi-family", "duplex", "triplex", "fourplex"}},
	{TypeCondo, []string{"condominium", "condo", "apartment"}},
	{TypeLot, []string{"vacant land", "land", "lot"}},
	{TypeDetached, []string{"detached", "house", "single family"}},
}

// NormalizePropertyType maps a raw feed type string onto the canonical
// category set. Unmatched values pass through unchanged rather than being
// dropped, so unusual board types stay visible.
func NormalizePropertyType(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return raw
	}
	for _, entry := range typeSynonyms {
		for _, synonym := range entry.synonyms {
			if strings.Contains(lowered, synonym) {
				return entry.canonical
			}
		}
	}
	return raw
}

// TypeSynonyms expands a logical category to its raw spellings for search
// predicates. Using the same table as NormalizePropertyType keeps search
// filtering symmetric with how listings are classified for display. Unknown
// categories expand to themselves.
func TypeSynonyms(category string) []string {
	lowered := strings.ToLower(strings.TrimSpace(category))
	for _, entry := range typeSynonyms {
		if entry.canonical == lowered {
			return entry.synonyms
		}
	}
	if lowered == "" {
		return nil
	}
	return []string{lowered}
}
