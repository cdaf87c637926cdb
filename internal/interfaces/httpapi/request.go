package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/aes-results/internal/domain/results"
	"github.com/riskibarqy/aes-results/internal/domain/schedule"
	"github.com/riskibarqy/aes-results/internal/usecase"
)

const (
	viewTable = "table"
	viewLines = "lines"
)

type eventRequest struct {
	EventID string `validate:"required,max=64,printascii"`
}

type clubTeamsRequest struct {
	EventID string `validate:"required,max=64,printascii"`
	ClubID  string `validate:"required,numeric,max=20"`
}

type teamInfoRequest struct {
	EventID string `validate:"required,max=64,printascii"`
	TeamID  int64  `validate:"gt=0"`
}

type teamRequest struct {
	EventID    string `validate:"required,max=64,printascii"`
	DivisionID string `validate:"required,max=32,printascii"`
	TeamID     int64  `validate:"gt=0"`
}

type scheduleRequest struct {
	teamRequest
	When string `validate:"required,oneof=past current future"`
	View string `validate:"omitempty,oneof=table lines"`
}

type eventWindowRequest struct {
	DaysBack  int `validate:"gte=0,lte=365"`
	DaysAhead int `validate:"gte=0,lte=365"`
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func pathParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}

func parseTeamIDParam(r *http.Request) (int64, error) {
	teamID, err := results.ParseTeamID(r.PathValue("teamID"))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return teamID, nil
}

func (h *Handler) parseTeamRequest(r *http.Request) (teamRequest, error) {
	teamID, err := parseTeamIDParam(r)
	if err != nil {
		return teamRequest{}, err
	}
	req := teamRequest{
		EventID:    pathParam(r, "eventID"),
		DivisionID: pathParam(r, "divisionID"),
		TeamID:     teamID,
	}
	return req, h.validateRequest(r.Context(), req)
}

func (h *Handler) parseScheduleRequest(r *http.Request) (scheduleRequest, error) {
	teamID, err := parseTeamIDParam(r)
	if err != nil {
		return scheduleRequest{}, err
	}
	req := scheduleRequest{
		teamRequest: teamRequest{
			EventID:    pathParam(r, "eventID"),
			DivisionID: pathParam(r, "divisionID"),
			TeamID:     teamID,
		},
		When: strings.ToLower(pathParam(r, "when")),
		View: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("view"))),
	}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return scheduleRequest{}, err
	}
	if req.View == "" {
		req.View = viewTable
	}
	return req, nil
}

func (req scheduleRequest) query() usecase.ScheduleQuery {
	return usecase.ScheduleQuery{
		EventID:    req.EventID,
		DivisionID: req.DivisionID,
		TeamID:     req.TeamID,
		When:       schedule.When(req.When),
	}
}

// parseEventWindow reads days_back and days_ahead, falling back to the
// configured window for each one that is absent.
func (h *Handler) parseEventWindow(r *http.Request) (usecase.EventWindow, error) {
	window := h.events.DefaultWindow()
	req := eventWindowRequest{DaysBack: window.DaysBack, DaysAhead: window.DaysAhead}

	query := r.URL.Query()
	for key, dst := range map[string]*int{"days_back": &req.DaysBack, "days_ahead": &req.DaysAhead} {
		raw := strings.TrimSpace(query.Get(key))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return usecase.EventWindow{}, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
		}
		*dst = v
	}

	if err := h.validateRequest(r.Context(), req); err != nil {
		return usecase.EventWindow{}, err
	}
	return usecase.EventWindow{DaysBack: req.DaysBack, DaysAhead: req.DaysAhead}, nil
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}
