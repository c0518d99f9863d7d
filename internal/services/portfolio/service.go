// Package portfolio answers read queries over the scored book.
package portfolio

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
)

// Service queries risk records produced by the scoring pipeline.
type Service struct {
	storage interfaces.PortfolioStorage
	logger  arbor.ILogger
}

// NewService creates a new portfolio service
func NewService(storage interfaces.PortfolioStorage, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// List returns scored SMEs matching the filter, plus the total match
// count before paging.
func (s *Service) List(ctx context.Context, opts interfaces.PortfolioListOptions) ([]*models.RiskRecord, int, error) {
	records, err := s.storage.GetAllRiskRecords(ctx)
	if err != nil {
		return nil, 0, err
	}

	filtered := records[:0:0]
	for _, r := range records {
		if opts.Sector != "" && r.Sector != opts.Sector {
			continue
		}
		if opts.Category != "" && r.Category != opts.Category {
			continue
		}
		if opts.MinScore > 0 && r.CompositeScore < opts.MinScore {
			continue
		}
		if opts.MaxScore > 0 && r.CompositeScore > opts.MaxScore {
			continue
		}
		filtered = append(filtered, r)
	}

	sortRecords(filtered, opts.SortBy, opts.SortDir)
	total := len(filtered)

	if opts.Offset > 0 {
		if opts.Offset >= len(filtered) {
			filtered = nil
		} else {
			filtered = filtered[opts.Offset:]
		}
	}
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}

	return filtered, total, nil
}

// Get returns one SME's current risk record.
func (s *Service) Get(ctx context.Context, smeID string) (*models.RiskRecord, error) {
	return s.storage.GetRiskRecord(ctx, smeID)
}

// Summary aggregates the scored book.
func (s *Service) Summary(ctx context.Context) (*models.PortfolioSummary, error) {
	records, err := s.storage.GetAllRiskRecords(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.PortfolioSummary{TotalSMEs: len(records)}
	var scoreSum float64
	for _, r := range records {
		summary.TotalExposure += r.CreditExposure
		scoreSum += r.CompositeScore
		switch r.Category {
		case models.RiskCategoryStable:
			summary.StableCount++
		case models.RiskCategoryMedium:
			summary.MediumCount++
		case models.RiskCategoryCritical:
			summary.CriticalCount++
			summary.CriticalExposure += r.CreditExposure
		}
	}
	if len(records) > 0 {
		summary.AverageScore = math.Round(scoreSum/float64(len(records))*10) / 10
	}

	return summary, nil
}

// SectorBreakdown rolls the book up by sector, highest average score
// first.
func (s *Service) SectorBreakdown(ctx context.Context) ([]models.SectorBreakdown, error) {
	records, err := s.storage.GetAllRiskRecords(ctx)
	if err != nil {
		return nil, err
	}

	agg := map[models.Sector]*models.SectorBreakdown{}
	for _, r := range records {
		b, ok := agg[r.Sector]
		if !ok {
			b = &models.SectorBreakdown{Sector: r.Sector}
			agg[r.Sector] = b
		}
		b.Count++
		b.TotalExposure += r.CreditExposure
		b.AverageScore += r.CompositeScore // running sum, averaged below
		if r.Category == models.RiskCategoryCritical {
			b.CriticalCount++
		}
	}

	out := make([]models.SectorBreakdown, 0, len(agg))
	for _, b := range agg {
		b.AverageScore = math.Round(b.AverageScore/float64(b.Count)*10) / 10
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AverageScore > out[j].AverageScore })

	return out, nil
}

// CriticalSMEs returns critical-category SMEs ordered by score, worst
// first.
func (s *Service) CriticalSMEs(ctx context.Context, limit int) ([]*models.RiskRecord, error) {
	records, _, err := s.List(ctx, interfaces.PortfolioListOptions{
		Category: models.RiskCategoryCritical,
		SortBy:   "score",
		SortDir:  "desc",
		Limit:    limit,
	})
	return records, err
}

// Search matches SMEs by identifier or name substring, case
// insensitive.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*models.RiskRecord, error) {
	records, err := s.storage.GetAllRiskRecords(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	var out []*models.RiskRecord
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.SMEID), q) {
			out = append(out, r)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func sortRecords(records []*models.RiskRecord, sortBy, sortDir string) {
	less := func(i, j int) bool { return records[i].CompositeScore < records[j].CompositeScore }
	switch sortBy {
	case "exposure":
		less = func(i, j int) bool { return records[i].CreditExposure < records[j].CreditExposure }
	case "name":
		less = func(i, j int) bool { return records[i].Name < records[j].Name }
	}

	if sortDir == "desc" {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(records, less)
}
