// Package registry holds the static per-country IBAN format data: layout
// templates and display names. It is assembled once and read-only
// afterwards, so a single instance serves any number of concurrent
// decodes.
package registry

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"ibanq/internal/iban/codec"
	"ibanq/internal/iban/models"
)

// Registry resolves country codes to format templates and country
// metadata. The zero value is not usable; construct with New.
type Registry struct {
	templates map[string]string
	names     map[string]string
	codes     []string
	sim       *metrics.JaroWinkler
}

// New builds the registry from the static tables, normalizing every
// template.
func New() *Registry {
	r := &Registry{
		templates: make(map[string]string, len(formats)),
		names:     make(map[string]string, len(countryNames)),
		codes:     make([]string, 0, len(formats)),
		sim:       metrics.NewJaroWinkler(),
	}
	for cc, raw := range formats {
		r.templates[cc] = string(codec.NormalizeTemplate(raw))
		r.codes = append(r.codes, cc)
	}
	for cc, name := range countryNames {
		r.names[cc] = name
	}
	sort.Strings(r.codes)
	return r
}

// key uppercases the first two characters of a candidate country code.
// Longer inputs are tolerated so a full IBAN can be passed directly.
func key(countryCode string) (string, bool) {
	if len(countryCode) < 2 {
		return "", false
	}
	return strings.ToUpper(countryCode[:2]), true
}

// Lookup returns the space-free format template for a country. Matching is
// case-insensitive on the first two characters.
func (r *Registry) Lookup(countryCode string) (string, bool) {
	k, ok := key(countryCode)
	if !ok {
		return "", false
	}
	t, ok := r.templates[k]
	return t, ok
}

// Name returns the English display name for a supported country, or the
// empty string.
func (r *Registry) Name(countryCode string) string {
	k, ok := key(countryCode)
	if !ok {
		return ""
	}
	return r.names[k]
}

// Countries lists every supported country sorted by code, with its display
// name and IBAN length.
func (r *Registry) Countries() []models.CountryInfo {
	out := make([]models.CountryInfo, 0, len(r.codes))
	for _, cc := range r.codes {
		out = append(out, models.CountryInfo{
			Code:   cc,
			Name:   r.names[cc],
			Length: len(r.templates[cc]),
		})
	}
	return out
}

// suggestThreshold is the minimum Jaro-Winkler similarity for a hint.
// Two-letter codes score 0 with no positional overlap and ~2/3 with one
// shared position, so this admits near misses and drops pure garbage.
const suggestThreshold = 0.6

// Suggest returns the supported country code most similar to the
// candidate, for hinting in unsupported-country errors, or the empty
// string when nothing comes close. Ties resolve to the lexicographically
// first code; the answer is decorative and never consulted by the codec.
func (r *Registry) Suggest(countryCode string) string {
	k, ok := key(countryCode)
	if !ok {
		return ""
	}
	best, bestScore := "", suggestThreshold
	for _, cc := range r.codes {
		score := strutil.Similarity(k, cc, r.sim)
		if score > bestScore {
			best, bestScore = cc, score
		}
	}
	return best
}
