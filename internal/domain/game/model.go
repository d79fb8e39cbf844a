package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/team"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusFinal      Status = "final"
)

// ParseStatus accepts the three stored values case-insensitively.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusScheduled:
		return StatusScheduled, true
	case StatusInProgress:
		return StatusInProgress, true
	case StatusFinal:
		return StatusFinal, true
	default:
		return "", false
	}
}

func (s Status) rank() int {
	switch s {
	case StatusInProgress:
		return 1
	case StatusFinal:
		return 2
	default:
		return 0
	}
}

// Before reports whether s is an earlier lifecycle stage than other.
func (s Status) Before(other Status) bool {
	return s.rank() < other.rank()
}

// Game is one scheduled matchup. ID is the schedule source's event id.
type Game struct {
	ID         int64
	Season     int
	Week       int
	StartTime  time.Time
	HomeTeam   string
	AwayTeam   string
	Status     Status
	WinnerTeam string
}

func (g Game) IsFinal() bool {
	return g.Status == StatusFinal
}

// Side returns the stored home or away name that names the same team as raw.
func (g Game) Side(raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	switch {
	case team.IsSame(g.HomeTeam, raw):
		return g.HomeTeam, true
	case team.IsSame(g.AwayTeam, raw):
		return g.AwayTeam, true
	default:
		return "", false
	}
}

func (g Game) Validate(maxWeek int) error {
	if g.ID <= 0 {
		return fmt.Errorf("game id must be > 0")
	}
	if g.Season <= 0 {
		return fmt.Errorf("game %d season must be > 0", g.ID)
	}
	if g.Week < 1 || g.Week > maxWeek {
		return fmt.Errorf("game %d week must be between 1 and %d", g.ID, maxWeek)
	}
	if g.StartTime.IsZero() {
		return fmt.Errorf("game %d start time is required", g.ID)
	}
	if strings.TrimSpace(g.HomeTeam) == "" || strings.TrimSpace(g.AwayTeam) == "" {
		return fmt.Errorf("game %d home and away teams are required", g.ID)
	}
	if team.IsSame(g.HomeTeam, g.AwayTeam) {
		return fmt.Errorf("game %d home and away teams must differ", g.ID)
	}
	if _, ok := ParseStatus(string(g.Status)); !ok {
		return fmt.Errorf("game %d has unknown status %q", g.ID, g.Status)
	}
	if g.IsFinal() {
		if _, ok := g.Side(g.WinnerTeam); !ok {
			return fmt.Errorf("game %d final winner %q is not home or away", g.ID, g.WinnerTeam)
		}
	} else if g.WinnerTeam != "" {
		return fmt.Errorf("game %d winner set before final", g.ID)
	}
	return nil
}

// Merge folds an ingested copy of a game into the stored one. Schedule fields
// follow incoming. Status never moves backwards, and a stored result survives
// a stale feed.
func Merge(existing, incoming Game) Game {
	merged := incoming
	if incoming.Status.Before(existing.Status) {
		merged.Status = existing.Status
		merged.WinnerTeam = existing.WinnerTeam
	}
	if merged.Status != StatusFinal {
		merged.WinnerTeam = ""
	} else if merged.WinnerTeam == "" {
		merged.WinnerTeam = existing.WinnerTeam
	}
	return merged
}
