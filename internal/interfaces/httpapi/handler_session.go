package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/infrastructure/session"
	"github.com/riskibarqy/weekly-pickem/internal/usecase"
)

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSession")
	defer span.End()

	var req loginRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	u, err := h.authService.Login(ctx, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	token, expiresAt, err := h.sessions.Issue(session.Principal{UserID: u.ID, Name: u.Name})
	if err != nil {
		h.logger.ErrorContext(ctx, "issue session failed", "user_id", u.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	writeSuccess(ctx, w, http.StatusCreated, sessionDTO{
		User:      userToDTO(u),
		Token:     token,
		ExpiresAt: &expiresAt,
	})
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSession")
	defer span.End()

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"signedOut": true})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	u, err := h.authService.Resolve(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve session failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionDTO{User: userToDTO(u)})
}

func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoster")
	defer span.End()

	users, err := h.authService.Roster(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list roster failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]userDTO, 0, len(users))
	for _, u := range users {
		items = append(items, userToDTO(u))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
