package collector

import (
	"log"
	"strings"
	"time"

	"FilingSentinel/internal/model"
)

// pageSize is how many filings to request per filer; the extractor then
// clips to the configured display cap.
const pageSize = 50

// Extract filters raw filings by recency, normalizes their fields, and
// keeps at most maxCount of them. Input is assumed sorted newest-first by
// the data source and output preserves that order. Malformed records are
// skipped with a diagnostic and never fail the whole extraction.
func Extract(raw []RawFiling, cutoff time.Time, maxCount int) []model.Filing {
	cutoffDate := cutoff.Truncate(24 * time.Hour)

	var filings []model.Filing
	for _, r := range raw {
		if len(filings) >= maxCount {
			break
		}
		if r.FiledAt == "" {
			log.Printf("[WARN] filing for %q has no filedAt timestamp, skipping", r.Issuer)
			continue
		}

		// Compare by calendar date only: the offset-aware time-of-day
		// part after 'T' is irrelevant to the lookback filter.
		dateStr, _, _ := strings.Cut(r.FiledAt, "T")
		filedDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			log.Printf("[WARN] unparseable filedAt %q: %v, skipping", r.FiledAt, err)
			continue
		}
		if filedDate.Before(cutoffDate) {
			continue
		}

		filings = append(filings, model.Filing{
			Form:         r.FormType,
			FiledDate:    dateStr,
			Issuer:       r.Issuer,
			PercentOwned: headlinePercent(r.Owners),
		})
	}
	return filings
}

// headlinePercent returns the largest numeric ownership percentage among
// the owners, or nil when none is numeric. JSON numbers arrive as
// float64; any other wire type is ignored.
func headlinePercent(owners []RawOwner) *float64 {
	var best *float64
	for _, o := range owners {
		p, ok := o.Percent.(float64)
		if !ok {
			continue
		}
		if best == nil || p > *best {
			v := p
			best = &v
		}
	}
	return best
}

// Collector fetches and normalizes recent filings for watched filers.
type Collector struct {
	Fetcher      Fetcher
	LookbackDays int
	MaxPerFiler  int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, lookbackDays, maxPerFiler int) *Collector {
	return &Collector{Fetcher: fetcher, LookbackDays: lookbackDays, MaxPerFiler: maxPerFiler}
}

// CollectFiler fetches one filer's raw filings and extracts the recent
// ones, newest first.
func (c *Collector) CollectFiler(filer model.Filer, now time.Time) ([]model.Filing, error) {
	cutoff := now.UTC().AddDate(0, 0, -c.LookbackDays)
	log.Printf("[INFO] fetching 13D/13G filings for CIK %s (cutoff: %s)", filer.CIK, cutoff.Format("2006-01-02"))

	raw, err := c.Fetcher.FetchFilings(filer.CIK, pageSize)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] %d filings returned via %s for CIK %s", len(raw), c.Fetcher.Name(), filer.CIK)

	return Extract(raw, cutoff, c.MaxPerFiler), nil
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Filings map[string][]RawFiling
	Errs    map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchFilings(cik string, _ int) ([]RawFiling, error) {
	if err := m.Errs[cik]; err != nil {
		return nil, err
	}
	return m.Filings[cik], nil
}
