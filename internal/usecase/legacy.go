package usecase

import "NoticeScanner/internal/domain"

// LegacyFiling is the reduced shape older consumers still read.
type LegacyFiling struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// LegacyResult wraps findings in the historical response envelope.
type LegacyResult struct {
	Filings []LegacyFiling `json:"filings"`
}

// LegacyFilings converts a run result into the legacy envelope.
func LegacyFilings(result domain.RunResult) LegacyResult {
	filings := make([]LegacyFiling, 0, len(result.Findings))
	for _, f := range result.Findings {
		filings = append(filings, LegacyFiling{Title: f.Title, URL: f.Link})
	}
	return LegacyResult{Filings: filings}
}
