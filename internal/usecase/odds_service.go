package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/weekly-pickem/internal/domain/odds"
	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
	"github.com/riskibarqy/weekly-pickem/internal/domain/scoring"
	"github.com/riskibarqy/weekly-pickem/internal/domain/user"
)

type TitleOdds struct {
	Season int
	Week   int
	odds.Estimate
}

type OddsService struct {
	userRepo    user.Repository
	pickRepo    pick.Repository
	scoringRepo scoring.Repository
	weeks       *WeekService
}

func NewOddsService(userRepo user.Repository, pickRepo pick.Repository, scoringRepo scoring.Repository, weeks *WeekService) *OddsService {
	return &OddsService{
		userRepo:    userRepo,
		pickRepo:    pickRepo,
		scoringRepo: scoringRepo,
		weeks:       weeks,
	}
}

// TitleOdds estimates each user's chance of winning the season. A zero
// season or week defaults to the current week.
func (s *OddsService) TitleOdds(ctx context.Context, seasonYear, week int) (_ TitleOdds, err error) {
	if seasonYear == 0 || week == 0 {
		current := s.weeks.Current(ctx)
		if seasonYear == 0 {
			seasonYear = current.Season
		}
		if week == 0 {
			week = current.Week
		}
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.TitleOdds", weekAttrs(seasonYear, week)...)
	defer func() { endSpan(span, err) }()

	seasonWeeks := s.weeks.Calendar().Weeks()
	if err := validateWeek(seasonYear, week, seasonWeeks); err != nil {
		return TitleOdds{}, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return TitleOdds{}, fmt.Errorf("list users: %w", err)
	}
	scores, err := s.scoringRepo.ListBySeason(ctx, seasonYear)
	if err != nil {
		return TitleOdds{}, fmt.Errorf("list weekly scores: %w", err)
	}
	totalPicks, err := s.pickRepo.CountThroughWeek(ctx, seasonYear, week)
	if err != nil {
		return TitleOdds{}, fmt.Errorf("count picks: %w", err)
	}

	estimate := odds.Compute(odds.Input{
		Standings:   odds.Leaderboard(users, scores),
		TotalPicks:  totalPicks,
		Users:       len(users),
		CurrentWeek: week,
		SeasonWeeks: seasonWeeks,
	})
	return TitleOdds{Season: seasonYear, Week: week, Estimate: estimate}, nil
}
