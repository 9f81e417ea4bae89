package search

import (
	"fmt"
	"strings"

	"northshore/server/internal/models"
)

const (
	minSuggestLength   = 2
	suggestionsPerType = 5
	maxSuggestions     = 10
)

// countRow receives grouped suggestion scans.
type countRow struct {
	Value string
	Count int
}

// Suggest produces typed autosuggest entries for a query prefix, derived
// from active listings only. Inputs shorter than two characters return an
// empty result to avoid pathologically broad scans. Results are cached per
// normalized prefix.
func (e *Engine) Suggest(queryPrefix string) ([]models.Suggestion, error) {
	prefix := strings.ToLower(strings.TrimSpace(queryPrefix))
	if len(prefix) < minSuggestLength {
		return nil, nil
	}

	if cached := e.suggestCache.Get(prefix); cached != nil && !cached.Expired() {
		return cached.Value(), nil
	}

	scans := []struct {
		suggestionType string
		column         string
		pattern        string
	}{
		{models.SuggestionCity, "city", prefix + "%"},
		{models.SuggestionNeighborhood, "neighborhood", prefix + "%"},
		{models.SuggestionStreet, "street_name", "%" + prefix + "%"},
		{models.SuggestionPropertyType, "property_type", "%" + prefix + "%"},
	}

	suggestions := make([]models.Suggestion, 0, maxSuggestions)
	for _, scan := range scans {
		var rows []countRow
		err := e.baseQuery().
			Select(fmt.Sprintf("%s AS value, COUNT(*) AS count", scan.column)).
			Where(fmt.Sprintf("%s IS NOT NULL AND %s <> ''", scan.column, scan.column)).
			Where(fmt.Sprintf("LOWER(%s) LIKE ?", scan.column), scan.pattern).
			Group(scan.column).
			Order("count DESC").
			Limit(suggestionsPerType).
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("suggest scan on %s: %w", scan.column, err)
		}

		for _, row := range rows {
			if len(suggestions) >= maxSuggestions {
				break
			}
			suggestions = append(suggestions, models.Suggestion{
				Type:  scan.suggestionType,
				Value: row.Value,
				Count: row.Count,
			})
		}
	}

	e.suggestCache.Set(prefix, suggestions, e.suggestTTL)
	return suggestions, nil
}
