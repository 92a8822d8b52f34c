// Package sources keeps the declarative registry of upstream feeds per
// region.
package sources

import (
	"fmt"
	"strings"

	"NoticeScanner/internal/domain"
)

// Registry maps region names to their configured sources.
type Registry struct {
	regions map[string][]domain.Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{regions: map[string][]domain.Source{}}
}

// Register appends a source under its region. Later registrations with the
// same source name replace earlier ones so config overrides defaults.
func (r *Registry) Register(region string, src domain.Source) {
	if r.regions == nil {
		r.regions = map[string][]domain.Source{}
	}

	key := normalizeRegion(region)
	list := r.regions[key]
	for i := range list {
		if list[i].Name == src.Name {
			list[i] = src
			return
		}
	}
	r.regions[key] = append(list, src)
}

// Resolve returns the sources for a region or an error if none are known.
func (r *Registry) Resolve(region string) ([]domain.Source, error) {
	if list, ok := r.regions[normalizeRegion(region)]; ok && len(list) > 0 {
		return list, nil
	}
	return nil, fmt.Errorf("no sources registered for region %s", region)
}

// Regions lists every region with at least one source.
func (r *Registry) Regions() []string {
	out := make([]string, 0, len(r.regions))
	for region := range r.regions {
		out = append(out, region)
	}
	return out
}

// OverrideURLs rewrites fetch URLs for every registered source the lookup
// knows about, regardless of whether the source came from defaults or
// config. Typically backed by SOURCE_URL_* environment variables.
func (r *Registry) OverrideURLs(lookup func(name string) (string, bool)) {
	if lookup == nil {
		return
	}
	for _, list := range r.regions {
		for i := range list {
			if url, ok := lookup(list[i].Name); ok {
				list[i].FetchURL = url
			}
		}
	}
}

func normalizeRegion(region string) string {
	return strings.ToLower(strings.TrimSpace(region))
}

// Defaults registers the built-in Ontario sources. Config-supplied sources
// and URL overrides are layered on top by the caller.
func Defaults(r *Registry) {
	r.Register("ontario", domain.Source{
		Name:         "ontario-court-bulletin",
		Jurisdiction: "Ontario Superior Court of Justice",
		FetchURL:     "https://www.ontariocourts.ca/scj/civil/notices/feed/",
		Strategy:     domain.StrategyRSS,
		Permitted:    true,
	})
	r.Register("ontario", domain.Source{
		Name:         "ontario-gazette-sales",
		Jurisdiction: "Ontario",
		FetchURL:     "https://www.ontario.ca/search/ontario-gazette/feed",
		Strategy:     domain.StrategyRSS,
		Permitted:    true,
	})
	r.Register("toronto", domain.Source{
		Name:         "toronto-development-applications",
		Jurisdiction: "City of Toronto",
		FetchURL:     "https://secure.toronto.ca/webapps/zoning/devapps/recent.xml",
		Strategy:     domain.StrategyRSS,
		Permitted:    true,
	})
	r.Register("toronto", domain.Source{
		Name:         "toronto-public-notices",
		Jurisdiction: "City of Toronto",
		FetchURL:     "https://www.toronto.ca/city-government/public-notices/",
		Strategy:     domain.StrategyWebpage,
		Permitted:    true,
	})
}
