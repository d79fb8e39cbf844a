package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
	"github.com/riskibarqy/weekly-pickem/internal/domain/team"
	"github.com/riskibarqy/weekly-pickem/internal/domain/user"
	"github.com/riskibarqy/weekly-pickem/internal/infrastructure/session"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
	"github.com/riskibarqy/weekly-pickem/internal/usecase"
)

// SessionCookie controls how the session token is written to browsers.
type SessionCookie struct {
	Name   string
	Secure bool
}

type Handler struct {
	authService       *usecase.AuthService
	weekService       *usecase.WeekService
	pickService       *usecase.PickService
	manualPickService *usecase.ManualPickService
	scoringService    *usecase.ScoringService
	oddsService       *usecase.OddsService
	scheduleService   *usecase.ScheduleService
	sessions          SessionManager
	cookie            SessionCookie
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	weekService *usecase.WeekService,
	pickService *usecase.PickService,
	manualPickService *usecase.ManualPickService,
	scoringService *usecase.ScoringService,
	oddsService *usecase.OddsService,
	scheduleService *usecase.ScheduleService,
	sessions SessionManager,
	cookie SessionCookie,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cookie.Name) == "" {
		cookie.Name = session.DefaultCookieName
	}

	return &Handler{
		authService:       authService,
		weekService:       weekService,
		pickService:       pickService,
		manualPickService: manualPickService,
		scoringService:    scoringService,
		oddsService:       oddsService,
		scheduleService:   scheduleService,
		sessions:          sessions,
		cookie:            cookie,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

// queryInt returns 0 when the parameter is absent.
func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func seasonWeekFromPath(r *http.Request) (int, int, error) {
	seasonYear, err := pathInt(r, "season")
	if err != nil {
		return 0, 0, err
	}
	week, err := pathInt(r, "week")
	if err != nil {
		return 0, 0, err
	}
	return seasonYear, week, nil
}

type loginRequest struct {
	Name string `json:"name" validate:"required"`
}

type submitPicksRequest struct {
	Picks []pickSelectionRequest `json:"picks" validate:"required,min=1,dive"`
}

type pickSelectionRequest struct {
	GameID     int64  `json:"gameId" validate:"required,gt=0"`
	PickedTeam string `json:"pickedTeam" validate:"required"`
}

type setResultRequest struct {
	WinnerTeam string `json:"winnerTeam"`
	Status     string `json:"status" validate:"required"`
	Season     int    `json:"season" validate:"omitempty,gt=0"`
	Week       int    `json:"week" validate:"omitempty,gt=0"`
}

type manualPicksRequest struct {
	Season    int                 `json:"season" validate:"required,gt=0"`
	Week      int                 `json:"week" validate:"required,gt=0"`
	User      string              `json:"user" validate:"required"`
	Picks     []manualPickRequest `json:"picks" validate:"required,min=1"`
	Overwrite *bool               `json:"overwrite"`
}

// manualPickRequest accepts either a bare team name or an object naming the
// team and optionally the game.
type manualPickRequest struct {
	Team       string `json:"team"`
	PickedTeam string `json:"pickedTeam"`
	GameID     int64  `json:"gameId"`
}

func (m *manualPickRequest) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var name string
		if err := sonic.Unmarshal(data, &name); err != nil {
			return err
		}
		*m = manualPickRequest{Team: name}
		return nil
	}

	type object manualPickRequest
	var decoded object
	if err := sonic.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*m = manualPickRequest(decoded)
	return nil
}

func (m manualPickRequest) toItem() usecase.ManualPickItem {
	teamName := m.Team
	if strings.TrimSpace(teamName) == "" {
		teamName = m.PickedTeam
	}
	return usecase.ManualPickItem{Team: teamName, GameID: m.GameID}
}

type seasonWeekRequest struct {
	Season int `json:"season" validate:"required,gt=0"`
	Week   int `json:"week" validate:"required,gt=0"`
}

type seasonWeeksRequest struct {
	Season int   `json:"season" validate:"required,gt=0"`
	Weeks  []int `json:"weeks" validate:"omitempty,dive,gt=0"`
}

type createWeekRequest struct {
	Season int                 `json:"season" validate:"required,gt=0"`
	Week   int                 `json:"week" validate:"required,gt=0"`
	Games  []manualGameRequest `json:"games" validate:"required,min=1,dive"`
}

type manualGameRequest struct {
	ID        int64     `json:"id" validate:"required,gt=0"`
	HomeTeam  string    `json:"homeTeam" validate:"required"`
	AwayTeam  string    `json:"awayTeam" validate:"required"`
	StartTime time.Time `json:"startTime" validate:"required"`
}

type userDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type sessionDTO struct {
	User      userDTO    `json:"user"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type weekDTO struct {
	Season   int       `json:"season"`
	Week     int       `json:"week"`
	LockTime time.Time `json:"lockTime"`
	Locked   bool      `json:"locked"`
}

type teamDTO struct {
	Name          string `json:"name"`
	Abbr          string `json:"abbr"`
	Primary       string `json:"primaryColor"`
	Secondary     string `json:"secondaryColor"`
	TextOnPrimary string `json:"textOnPrimary"`
	LogoURL       string `json:"logoUrl"`
}

type gameDTO struct {
	ID         int64     `json:"id"`
	Season     int       `json:"season"`
	Week       int       `json:"week"`
	StartTime  time.Time `json:"startTime"`
	HomeTeam   string    `json:"homeTeam"`
	AwayTeam   string    `json:"awayTeam"`
	Status     string    `json:"status"`
	WinnerTeam string    `json:"winnerTeam,omitempty"`
	HomeLogo   string    `json:"homeLogo,omitempty"`
	AwayLogo   string    `json:"awayLogo,omitempty"`
}

type pickDTO struct {
	GameID     int64     `json:"gameId"`
	PickedTeam string    `json:"pickedTeam"`
	Season     int       `json:"season"`
	Week       int       `json:"week"`
	CreatedAt  time.Time `json:"createdAt"`
}

type userPicksDTO struct {
	UserID int64     `json:"userId"`
	User   string    `json:"user"`
	Picks  []pickDTO `json:"picks"`
}

type weeklyScoreDTO struct {
	Week   int `json:"week"`
	Points int `json:"points"`
}

type scoreboardRowDTO struct {
	UserID int64            `json:"userId"`
	Name   string           `json:"name"`
	Total  int              `json:"total"`
	Weekly []weeklyScoreDTO `json:"weekly"`
}

type oddsEntryDTO struct {
	UserID      int64   `json:"userId"`
	Name        string  `json:"name"`
	Points      int     `json:"points"`
	Margin      int     `json:"margin"`
	OddsPercent float64 `json:"oddsPercent"`
}

type titleOddsDTO struct {
	Season          int            `json:"season"`
	Week            int            `json:"week"`
	RemainingWeeks  int            `json:"remainingWeeks"`
	AvgPicksPerWeek float64        `json:"avgPicksPerWeek"`
	MaxSwing        float64        `json:"maxSwing"`
	Odds            []oddsEntryDTO `json:"odds"`
}

type scoreSummaryDTO struct {
	Season     int       `json:"season"`
	Week       int       `json:"week"`
	Users      int       `json:"users"`
	Scored     int       `json:"scored"`
	Pending    int       `json:"pending"`
	ComputedAt time.Time `json:"computedAt"`
}

type pickIssueDTO struct {
	Team   string `json:"team,omitempty"`
	GameID int64  `json:"gameId,omitempty"`
	Reason string `json:"reason"`
}

type manualPicksResultDTO struct {
	User        string         `json:"user"`
	Season      int            `json:"season"`
	Week        int            `json:"week"`
	Inserted    int            `json:"inserted"`
	Overwritten int            `json:"overwritten"`
	Issues      []pickIssueDTO `json:"issues"`
}

type resetWeekDTO struct {
	Season        int `json:"season"`
	Week          int `json:"week"`
	PicksDeleted  int `json:"picksDeleted"`
	ScoresDeleted int `json:"scoresDeleted"`
}

type setResultDTO struct {
	Game   gameDTO          `json:"game"`
	Scores *scoreSummaryDTO `json:"scores,omitempty"`
}

type weekFetchDTO struct {
	Season   int    `json:"season"`
	Week     int    `json:"week"`
	Fetched  int    `json:"fetched"`
	Upserted int    `json:"upserted"`
	Skipped  int    `json:"skipped"`
	Error    string `json:"error,omitempty"`
}

type seasonFetchDTO struct {
	Season   int            `json:"season"`
	Workers  int            `json:"workers"`
	Upserted int            `json:"upserted"`
	Failed   int            `json:"failed"`
	Weeks    []weekFetchDTO `json:"weeks"`
}

type createWeekDTO struct {
	Season   int `json:"season"`
	Week     int `json:"week"`
	Upserted int `json:"upserted"`
}

type cronRunDTO struct {
	Season  int              `json:"season"`
	Week    int              `json:"week"`
	Games   int              `json:"games"`
	Skipped bool             `json:"skipped"`
	Reason  string           `json:"reason,omitempty"`
	Scores  *scoreSummaryDTO `json:"scores,omitempty"`
}

func userToDTO(u user.User) userDTO {
	return userDTO{ID: u.ID, Name: u.Name}
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		Name:          t.Nickname,
		Abbr:          t.Abbr,
		Primary:       t.Primary,
		Secondary:     t.Secondary,
		TextOnPrimary: t.TextOnPrimary,
		LogoURL:       t.LogoURL(team.LogoLarge),
	}
}

func gameToDTO(g game.Game) gameDTO {
	out := gameDTO{
		ID:         g.ID,
		Season:     g.Season,
		Week:       g.Week,
		StartTime:  g.StartTime,
		HomeTeam:   g.HomeTeam,
		AwayTeam:   g.AwayTeam,
		Status:     string(g.Status),
		WinnerTeam: g.WinnerTeam,
	}
	if home, ok := team.Lookup(g.HomeTeam); ok {
		out.HomeLogo = home.LogoURL(team.LogoSmall)
	}
	if away, ok := team.Lookup(g.AwayTeam); ok {
		out.AwayLogo = away.LogoURL(team.LogoSmall)
	}
	return out
}

func picksToDTO(picks []pick.Pick) []pickDTO {
	out := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		out = append(out, pickDTO{
			GameID:     p.GameID,
			PickedTeam: p.PickedTeam,
			Season:     p.Season,
			Week:       p.Week,
			CreatedAt:  p.CreatedAt,
		})
	}
	return out
}

func scoreSummaryToDTO(s usecase.ScoreSummary) scoreSummaryDTO {
	return scoreSummaryDTO{
		Season:     s.Season,
		Week:       s.Week,
		Users:      s.Users,
		Scored:     s.Scored,
		Pending:    s.Pending,
		ComputedAt: s.ComputedAt,
	}
}

func optionalScoreSummary(s *usecase.ScoreSummary) *scoreSummaryDTO {
	if s == nil {
		return nil
	}
	dto := scoreSummaryToDTO(*s)
	return &dto
}

func weekFetchToDTO(f usecase.WeekFetch) weekFetchDTO {
	return weekFetchDTO{
		Season:   f.Season,
		Week:     f.Week,
		Fetched:  f.Fetched,
		Upserted: f.Upserted,
		Skipped:  f.Skipped,
		Error:    f.Error,
	}
}

func cronRunToDTO(run usecase.CronRun) cronRunDTO {
	return cronRunDTO{
		Season:  run.Season,
		Week:    run.Week,
		Games:   run.Games,
		Skipped: run.Skipped,
		Reason:  run.Reason,
		Scores:  optionalScoreSummary(run.Scores),
	}
}
