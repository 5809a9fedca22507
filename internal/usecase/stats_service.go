package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/republic-cup/internal/domain/match"
	"github.com/riskibarqy/republic-cup/internal/domain/prediction"
	"github.com/riskibarqy/republic-cup/internal/domain/scorerstats"
	"github.com/riskibarqy/republic-cup/internal/domain/standing"
	"github.com/riskibarqy/republic-cup/internal/domain/team"
	"github.com/sourcegraph/conc"
)

// Overview is the combined payload of the table and trophy screens.
type Overview struct {
	Standings []standing.Row
	Stats     scorerstats.Stats
	Summary   scorerstats.Summary
}

// StatsService derives every table and statistic from a fresh snapshot on
// each call.
type StatsService struct {
	teamRepo       team.Repository
	matchRepo      match.Repository
	predictionRepo prediction.Repository
}

func NewStatsService(teamRepo team.Repository, matchRepo match.Repository, predictionRepo prediction.Repository) *StatsService {
	return &StatsService{
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
	}
}

func (s *StatsService) Standings(ctx context.Context) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Standings")
	defer span.End()

	roster, matches, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return standing.Calculate(roster, matches), nil
}

func (s *StatsService) ScorerStats(ctx context.Context) (scorerstats.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ScorerStats")
	defer span.End()

	roster, matches, err := s.snapshot(ctx)
	if err != nil {
		return scorerstats.Stats{}, err
	}
	return scorerstats.Compute(roster, matches), nil
}

func (s *StatsService) Summary(ctx context.Context) (scorerstats.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Summary")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return scorerstats.Summary{}, fmt.Errorf("list matches: %w", err)
	}
	return scorerstats.Summarize(matches), nil
}

// Overview computes the table and the scorer statistics of one snapshot
// concurrently. Both calculators only read the snapshot.
func (s *StatsService) Overview(ctx context.Context) (Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Overview")
	defer span.End()

	roster, matches, err := s.snapshot(ctx)
	if err != nil {
		return Overview{}, err
	}

	var out Overview
	var wg conc.WaitGroup
	wg.Go(func() {
		out.Standings = standing.Calculate(roster, matches)
	})
	wg.Go(func() {
		out.Stats = scorerstats.Compute(roster, matches)
	})
	wg.Go(func() {
		out.Summary = scorerstats.Summarize(matches)
	})
	wg.Wait()

	return out, nil
}

func (s *StatsService) FanFavourites(ctx context.Context) ([]scorerstats.FanVote, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.FanFavourites")
	defer span.End()

	items, err := s.predictionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return scorerstats.FanFavourites(items), nil
}

func (s *StatsService) snapshot(ctx context.Context) (team.Roster, []match.Match, error) {
	roster, err := loadRoster(ctx, s.teamRepo)
	if err != nil {
		return nil, nil, err
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list matches: %w", err)
	}
	return roster, matches, nil
}
