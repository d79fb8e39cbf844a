package odds

import (
	"math"
	"testing"

	"github.com/riskibarqy/weekly-pickem/internal/domain/scoring"
	"github.com/riskibarqy/weekly-pickem/internal/domain/user"
)

func TestLeaderboardSumsAndBreaksTiesByName(t *testing.T) {
	users := []user.User{{ID: 1, Name: "Victor"}, {ID: 2, Name: "Mihir"}, {ID: 3, Name: "Dakota"}, {ID: 4, Name: "Chris"}}
	scores := []scoring.WeeklyScore{
		{UserID: 1, Week: 1, Points: 2},
		{UserID: 1, Week: 2, Points: 3},
		{UserID: 2, Week: 1, Points: 5},
		{UserID: 3, Week: 1, Points: 0},
	}

	got := Leaderboard(users, scores)
	want := []Standing{
		{UserID: 2, Name: "Mihir", Points: 5},
		{UserID: 1, Name: "Victor", Points: 5},
		{UserID: 4, Name: "Chris", Points: 0},
		{UserID: 3, Name: "Dakota", Points: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected standings: %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("standing %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAvgPicksPerWeek(t *testing.T) {
	cases := []struct {
		name               string
		total, users, week int
		want               float64
	}{
		{name: "week one defaults", total: 100, users: 6, week: 1, want: 3},
		{name: "week zero defaults", total: 0, users: 6, week: 0, want: 3},
		{name: "plain average", total: 48, users: 6, week: 4, want: 2},
		{name: "clamped low", total: 0, users: 6, week: 5, want: 1},
		{name: "clamped high", total: 400, users: 6, week: 5, want: 6},
		{name: "no users counts as one", total: 8, users: 0, week: 4, want: 2},
	}
	for _, tc := range cases {
		if got := AvgPicksPerWeek(tc.total, tc.users, tc.week); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestComputeNormalizesToHundred(t *testing.T) {
	distributions := [][]int{
		{0},
		{0, 0, 0, 0, 0, 0},
		{10, 4, 4, 2, 0, 0},
		{30, 0},
		{1, 2, 3, 4, 5, 6},
	}
	for _, points := range distributions {
		standings := make([]Standing, len(points))
		for i, p := range points {
			standings[i] = Standing{UserID: int64(i + 1), Points: p}
		}
		for _, week := range []int{1, 5, 18, 19, 25} {
			est := Compute(Input{Standings: standings, TotalPicks: 60, Users: len(points), CurrentWeek: week, SeasonWeeks: 18})
			sum := 0.0
			for _, e := range est.Odds {
				sum += e.OddsPercent
			}
			if math.Abs(sum-100) > 1e-9 {
				t.Fatalf("points %v week %d: odds sum to %v", points, week, sum)
			}
		}
	}
}

func TestComputeRemainingWeeksAndSwing(t *testing.T) {
	est := Compute(Input{CurrentWeek: 4, SeasonWeeks: 18, TotalPicks: 48, Users: 6})
	if est.RemainingWeeks != 15 {
		t.Fatalf("remaining weeks = %d, want 15", est.RemainingWeeks)
	}
	if est.MaxSwing != 30 {
		t.Fatalf("max swing = %v, want 30", est.MaxSwing)
	}

	late := Compute(Input{CurrentWeek: 20, SeasonWeeks: 18})
	if late.RemainingWeeks != 0 || late.MaxSwing != minSwing {
		t.Fatalf("expected zero remaining weeks and epsilon swing, got %+v", late)
	}
}

func TestComputeMarginsAndOrdering(t *testing.T) {
	standings := []Standing{
		{UserID: 1, Name: "Ryan", Points: 10},
		{UserID: 2, Name: "Jihoo", Points: 7},
		{UserID: 3, Name: "Chris", Points: 7},
	}
	est := Compute(Input{Standings: standings, TotalPicks: 36, Users: 3, CurrentWeek: 5, SeasonWeeks: 18})

	if est.Odds[0].UserID != 1 || est.Odds[0].Margin != 3 {
		t.Fatalf("leader should rank first with margin 3, got %+v", est.Odds[0])
	}
	if est.Odds[1].Margin != -3 || est.Odds[2].Margin != -3 {
		t.Fatalf("trailers should have margin -3, got %+v", est.Odds)
	}
	if est.Odds[1].UserID != 2 || est.Odds[2].UserID != 3 {
		t.Fatalf("ties should keep standings order, got %+v", est.Odds)
	}
}

func TestComputeIsMonotonicInMargin(t *testing.T) {
	base := []Standing{{UserID: 1, Points: 5}, {UserID: 2, Points: 8}, {UserID: 3, Points: 3}}

	prev := -1.0
	for p := 0; p <= 20; p++ {
		standings := append([]Standing(nil), base...)
		standings[0].Points = p
		est := Compute(Input{Standings: standings, TotalPicks: 40, Users: 3, CurrentWeek: 6, SeasonWeeks: 18})
		var got float64
		for _, e := range est.Odds {
			if e.UserID == 1 {
				got = e.OddsPercent
			}
		}
		if got < prev {
			t.Fatalf("odds decreased as points rose to %d: %v < %v", p, got, prev)
		}
		prev = got
	}
}
