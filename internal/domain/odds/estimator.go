// Package odds turns season standings into a heuristic title chance per
// user. The numbers are a display aid: a logistic curve over each user's lead
// relative to the points still available. They are not calibrated
// probabilities.
package odds

import (
	"math"
	"sort"
	"strings"

	"github.com/riskibarqy/weekly-pickem/internal/domain/scoring"
	"github.com/riskibarqy/weekly-pickem/internal/domain/user"
)

const (
	// Steepness of the logistic curve.
	Steepness = 3.0

	defaultAvgPicks = 3.0
	minAvgPicks     = 1.0
	maxAvgPicks     = 6.0
	minSwing        = 0.001
)

// Standing is one user's season total.
type Standing struct {
	UserID int64
	Name   string
	Points int
}

// Entry is one user's estimated title chance.
type Entry struct {
	UserID      int64
	Name        string
	Points      int
	Margin      int
	OddsPercent float64
}

type Input struct {
	Standings   []Standing
	TotalPicks  int
	Users       int
	CurrentWeek int
	SeasonWeeks int
}

type Estimate struct {
	RemainingWeeks  int
	AvgPicksPerWeek float64
	MaxSwing        float64
	Odds            []Entry
}

// Leaderboard sums weekly points per user. Users without scores total zero.
// Order is points descending, then name ascending.
func Leaderboard(users []user.User, scores []scoring.WeeklyScore) []Standing {
	totals := make(map[int64]int, len(users))
	for _, s := range scores {
		totals[s.UserID] += s.Points
	}

	out := make([]Standing, 0, len(users))
	for _, u := range users {
		out = append(out, Standing{UserID: u.ID, Name: u.Name, Points: totals[u.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// AvgPicksPerWeek estimates picks per user per week so far, clamped to
// [1, 6]. Week one and earlier default to 3.
func AvgPicksPerWeek(totalPicks, users, currentWeek int) float64 {
	if currentWeek <= 1 {
		return defaultAvgPicks
	}
	avg := float64(totalPicks) / float64(max(1, users)*max(1, currentWeek))
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		return defaultAvgPicks
	}
	return math.Min(maxAvgPicks, math.Max(minAvgPicks, avg))
}

// Compute estimates title odds. Percentages sum to 100 for a non-empty
// standings list and are sorted descending; ties keep standings order.
func Compute(in Input) Estimate {
	seasonWeeks := in.SeasonWeeks
	if seasonWeeks < 1 {
		seasonWeeks = 18
	}

	est := Estimate{
		RemainingWeeks:  max(0, seasonWeeks-in.CurrentWeek+1),
		AvgPicksPerWeek: AvgPicksPerWeek(in.TotalPicks, in.Users, in.CurrentWeek),
	}
	est.MaxSwing = math.Max(minSwing, float64(est.RemainingWeeks)*est.AvgPicksPerWeek)

	raw := make([]float64, len(in.Standings))
	entries := make([]Entry, len(in.Standings))
	sum := 0.0
	for i, s := range in.Standings {
		bestOther := 0
		for j, other := range in.Standings {
			if j != i && other.Points > bestOther {
				bestOther = other.Points
			}
		}
		margin := s.Points - bestOther
		raw[i] = logistic(Steepness * float64(margin) / est.MaxSwing)
		sum += raw[i]
		entries[i] = Entry{UserID: s.UserID, Name: s.Name, Points: s.Points, Margin: margin}
	}
	if sum == 0 {
		sum = 1
	}
	for i := range entries {
		entries[i].OddsPercent = raw[i] / sum * 100
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OddsPercent > entries[j].OddsPercent
	})
	est.Odds = entries
	return est
}

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
