package scoring

import (
	"testing"

	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
)

func week1Games(game2 game.Status, game2Winner string) map[int64]game.Game {
	return map[int64]game.Game{
		1: {ID: 1, HomeTeam: "Chiefs", AwayTeam: "Ravens", Status: game.StatusFinal, WinnerTeam: "Chiefs"},
		2: {ID: 2, HomeTeam: "Eagles", AwayTeam: "Cowboys", Status: game2, WinnerTeam: game2Winner},
	}
}

func TestTallyPicks(t *testing.T) {
	userA := []pick.Pick{
		{UserID: 1, GameID: 1, PickedTeam: "Chiefs"},
		{UserID: 1, GameID: 2, PickedTeam: "Eagles"},
	}
	userB := []pick.Pick{
		{UserID: 2, GameID: 1, PickedTeam: "chiefs"},
	}

	cases := []struct {
		name       string
		picks      []pick.Pick
		games      map[int64]game.Game
		wantReady  bool
		wantPoints int
	}{
		{name: "pending game blocks scoring", picks: userA, games: week1Games(game.StatusScheduled, ""), wantReady: false, wantPoints: 0},
		{name: "one wrong pick scores zero", picks: userA, games: week1Games(game.StatusFinal, "Cowboys"), wantReady: true, wantPoints: 0},
		{name: "all correct scores pick count", picks: userA, games: week1Games(game.StatusFinal, "Eagles"), wantReady: true, wantPoints: 2},
		{name: "partial slate scores its own count", picks: userB, games: week1Games(game.StatusScheduled, ""), wantReady: true, wantPoints: 1},
		{name: "no picks scores zero", picks: nil, games: week1Games(game.StatusFinal, "Eagles"), wantReady: true, wantPoints: 0},
		{name: "missing game blocks scoring", picks: []pick.Pick{{GameID: 99, PickedTeam: "Chiefs"}}, games: week1Games(game.StatusFinal, "Eagles"), wantReady: false, wantPoints: 0},
		{name: "in progress blocks scoring", picks: userA, games: week1Games(game.StatusInProgress, ""), wantReady: false, wantPoints: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tally := TallyPicks(tc.picks, tc.games)
			if tally.Ready() != tc.wantReady {
				t.Fatalf("ready = %v, want %v (%+v)", tally.Ready(), tc.wantReady, tally)
			}
			if tally.Points() != tc.wantPoints {
				t.Fatalf("points = %d, want %d (%+v)", tally.Points(), tc.wantPoints, tally)
			}
		})
	}
}

func TestPointsAreAllOrNothing(t *testing.T) {
	for picks := 1; picks <= 6; picks++ {
		for wrong := 0; wrong <= picks; wrong++ {
			tally := Tally{Picks: picks, Correct: picks - wrong, Wrong: wrong}
			got := tally.Points()
			if wrong == 0 && got != picks {
				t.Fatalf("%d correct picks should score %d, got %d", picks, picks, got)
			}
			if wrong > 0 && got != 0 {
				t.Fatalf("%d wrong of %d should score 0, got %d", wrong, picks, got)
			}
		}
	}
}
