package identity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"northshore/server/internal/database"
	"northshore/server/internal/listing"
	"northshore/server/internal/models"
)

// Directory is the read surface the resolver needs from the stores.
// *database.Store satisfies it.
type Directory interface {
	GetMlsListingByNumber(mlsNumber string) (*models.MlsListing, error)
	GetMlsListing(listingKey string) (*models.MlsListing, error)
	GetCrmProperty(id string) (*models.CrmProperty, error)
	ListActiveCrmProperties() ([]models.CrmProperty, error)
	ListActiveMlsListings() ([]models.MlsListing, error)
}

var (
	// An uppercase-letter-prefixed alphanumeric token at the end of the id,
	// e.g. "...-E9876543": an MLS-style board number.
	mlsCodeSuffix = regexp.MustCompile(`-([A-Z][A-Z0-9]+)$`)

	// A trailing 8-hex-character short id suffix on a slug.
	hexSuffix = regexp.MustCompile(`-([0-9a-f]{8})$`)

	nonHex = regexp.MustCompile(`[^0-9a-f]`)
)

// Resolver maps an opaque path identifier (UUID, MLS number, or SEO slug)
// onto exactly one record in one of the two stores.
type Resolver struct {
	store  Directory
	logger *logrus.Logger
}

func NewResolver(store Directory, logger *logrus.Logger) *Resolver {
	if logger == nil {
		logger = logrus.New()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve tries the cheapest, most specific lookups first and falls back to
// a slug scan. It returns database.ErrNotFound only after every tier is
// exhausted; malformed input simply fails every tier and never errors on
// its own.
func (r *Resolver) Resolve(rawID string) (models.RecordRef, error) {
	// Tier 1: trailing MLS-style code
	if match := mlsCodeSuffix.FindStringSubmatch(rawID); match != nil {
		found, ref, err := r.byMlsNumber(match[1])
		if err != nil {
			return models.RecordRef{}, err
		}
		if found {
			return ref, nil
		}
	}

	// Tier 2: canonical UUID shape means a CRM primary key
	if _, err := uuid.Parse(rawID); err == nil {
		found, ref, err := r.byCrmID(rawID)
		if err != nil {
			return models.RecordRef{}, err
		}
		if found {
			return ref, nil
		}
	}

	// Tier 3: MLS mirror primary key
	found, ref, err := r.byListingKey(rawID)
	if err != nil {
		return models.RecordRef{}, err
	}
	if found {
		return ref, nil
	}

	// Tier 4: slug scan over both stores
	return r.bySlug(rawID)
}

func (r *Resolver) byMlsNumber(mlsNumber string) (bool, models.RecordRef, error) {
	row, err := r.store.GetMlsListingByNumber(mlsNumber)
	if errors.Is(err, database.ErrNotFound) {
		return false, models.RecordRef{}, nil
	}
	if err != nil {
		return false, models.RecordRef{}, fmt.Errorf("resolving MLS number %s: %w", mlsNumber, err)
	}
	return true, models.RecordRef{Source: models.SourceMLS, RecordID: row.ListingKey}, nil
}

func (r *Resolver) byCrmID(id string) (bool, models.RecordRef, error) {
	row, err := r.store.GetCrmProperty(id)
	if errors.Is(err, database.ErrNotFound) {
		return false, models.RecordRef{}, nil
	}
	if err != nil {
		return false, models.RecordRef{}, fmt.Errorf("resolving CRM id %s: %w", id, err)
	}
	return true, models.RecordRef{Source: models.SourceCRM, RecordID: row.ID}, nil
}

func (r *Resolver) byListingKey(listingKey string) (bool, models.RecordRef, error) {
	row, err := r.store.GetMlsListing(listingKey)
	if errors.Is(err, database.ErrNotFound) {
		return false, models.RecordRef{}, nil
	}
	if err != nil {
		return false, models.RecordRef{}, fmt.Errorf("resolving listing key %s: %w", listingKey, err)
	}
	return true, models.RecordRef{Source: models.SourceMLS, RecordID: row.ListingKey}, nil
}

// slugCandidate is one scanned record's identity material.
type slugCandidate struct {
	id          string
	addressSlug string
	fullSlug    string
	// legacySuffixes are accepted raw-id endings kept for older slug formats
	legacySuffixes []string
}

// bySlug is the linear fallback: compute every active record's canonical
// slug and compare. CRM rows are scanned before MLS rows.
func (r *Resolver) bySlug(rawID string) (models.RecordRef, error) {
	crmRows, err := r.store.ListActiveCrmProperties()
	if err != nil {
		return models.RecordRef{}, fmt.Errorf("scanning CRM slugs: %w", err)
	}

	crmCandidates := make([]slugCandidate, 0, len(crmRows))
	for _, row := range crmRows {
		crmCandidates = append(crmCandidates, slugCandidate{
			id:          row.ID,
			addressSlug: listing.Slugify(row.Address),
			fullSlug:    listing.CanonicalSlug(row.Address, row.ID),
		})
	}
	if id, ok := r.findBySlugFuzzy(rawID, crmCandidates); ok {
		return models.RecordRef{Source: models.SourceCRM, RecordID: id}, nil
	}

	mlsRows, err := r.store.ListActiveMlsListings()
	if err != nil {
		return models.RecordRef{}, fmt.Errorf("scanning MLS slugs: %w", err)
	}

	mlsCandidates := make([]slugCandidate, 0, len(mlsRows))
	for i := range mlsRows {
		canonical := listing.Transform(&mlsRows[i], nil)
		key := mlsRows[i].ListingKey
		mlsCandidates = append(mlsCandidates, slugCandidate{
			id:          key,
			addressSlug: listing.Slugify(mlsRows[i].Address),
			fullSlug:    canonical.Slug,
			legacySuffixes: []string{
				"-" + key,
				"-" + leadingHex(key, 8),
			},
		})
	}
	if id, ok := r.findBySlugFuzzy(rawID, mlsCandidates); ok {
		return models.RecordRef{Source: models.SourceMLS, RecordID: id}, nil
	}

	return models.RecordRef{}, database.ErrNotFound
}

// findBySlugFuzzy applies the slug comparison policy: exact match, then the
// legacy id-suffix accepts, then 8-hex short-id disambiguation, and finally
// substring containment in either direction on hyphen-stripped slugs.
//
// The containment tier is deliberately lossy: multiple records can satisfy
// it and the first candidate in iteration order wins. That is a known
// ambiguity for colliding addresses, preserved for legacy link
// compatibility, not a bug to fix silently.
func (r *Resolver) findBySlugFuzzy(rawID string, candidates []slugCandidate) (string, bool) {
	for _, candidate := range candidates {
		if candidate.fullSlug != "" && candidate.fullSlug == rawID {
			return candidate.id, true
		}
	}

	for _, candidate := range candidates {
		for _, suffix := range candidate.legacySuffixes {
			if len(suffix) > 1 && strings.HasSuffix(rawID, suffix) {
				return candidate.id, true
			}
		}
	}

	if match := hexSuffix.FindStringSubmatch(rawID); match != nil {
		prefix := strings.TrimSuffix(rawID, "-"+match[1])
		for _, candidate := range candidates {
			if listing.ShortIDSuffix(candidate.id) == match[1] && candidate.addressSlug == prefix {
				return candidate.id, true
			}
		}
	}

	normalized := strings.ReplaceAll(rawID, "-", "")
	if normalized == "" {
		return "", false
	}
	for _, candidate := range candidates {
		slug := strings.ReplaceAll(candidate.fullSlug, "-", "")
		if slug == "" {
			continue
		}
		if strings.Contains(slug, normalized) || strings.Contains(normalized, slug) {
			r.logger.WithFields(logrus.Fields{
				"raw_id":    rawID,
				"record_id": candidate.id,
			}).Debug("Resolved id via fuzzy slug containment")
			return candidate.id, true
		}
	}

	return "", false
}

// leadingHex returns the first n hex characters of an id, lowercased.
func leadingHex(id string, n int) string {
	hexOnly := nonHex.ReplaceAllString(strings.ToLower(id), "")
	if len(hexOnly) < n {
		return hexOnly
	}
	return hexOnly[:n]
}
