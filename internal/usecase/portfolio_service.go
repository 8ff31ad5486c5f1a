package usecase

import (
	"context"
	"log"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub001/internal/domain/capability"
)

// PortfolioService serves portfolio-level rollups. Aggregation reads
// every tracked transition, so the summary is cached; the cache is
// best-effort and a miss or failure falls back to recomputing.
type PortfolioService struct {
	Capabilities CapabilityRepository
	Cache        SummaryCache
	Clock        func() time.Time
}

func NewPortfolioService(capabilities CapabilityRepository, cache SummaryCache) *PortfolioService {
	return &PortfolioService{
		Capabilities: capabilities,
		Cache:        cache,
		Clock:        time.Now,
	}
}

func (s *PortfolioService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *PortfolioService) Summary(ctx context.Context) (capability.PortfolioSummary, error) {
	if s.Cache != nil {
		cached, err := s.Cache.GetSummary(ctx)
		if err != nil {
			log.Printf("portfolio cache read: %v", err)
		} else if cached != nil {
			return *cached, nil
		}
	}
	tracked, err := s.Capabilities.ListTracked(ctx)
	if err != nil {
		return capability.PortfolioSummary{}, err
	}
	summary := capability.AggregatePortfolio(tracked, s.now())
	if s.Cache != nil {
		if err := s.Cache.SetSummary(ctx, summary); err != nil {
			log.Printf("portfolio cache write: %v", err)
		}
	}
	return summary, nil
}

func (s *PortfolioService) StaffingProjection(ctx context.Context) ([]capability.ProjectionPoint, error) {
	tracked, err := s.Capabilities.ListTracked(ctx)
	if err != nil {
		return nil, err
	}
	return capability.AggregateStaffingProjection(tracked), nil
}
