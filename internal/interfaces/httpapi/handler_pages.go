package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/aes-results/internal/usecase"
)

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/events", http.StatusFound)
}

func (h *Handler) EventsPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Page.Events")
	defer span.End()

	window, err := h.parseEventWindow(r.WithContext(ctx))
	if err != nil {
		h.renderError(ctx, w, err)
		return
	}

	events, err := h.events.ListEvents(ctx, window)
	if err != nil {
		h.logger.WarnContext(ctx, "list events failed", "error", err)
		h.renderError(ctx, w, err)
		return
	}

	h.renderHTML(ctx, w, http.StatusOK, "events", eventsView{Title: "Events", Window: window, Events: events})
}

func (h *Handler) EventClubsPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Page.EventClubs")
	defer span.End()

	req := eventRequest{EventID: pathParam(r, "eventID")}
	if err := h.validateRequest(ctx, req); err != nil {
		h.renderError(ctx, w, err)
		return
	}

	clubs, err := h.events.GetEventClubs(ctx, req.EventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get event clubs failed", "event_id", req.EventID, "error", err)
		h.renderError(ctx, w, err)
		return
	}

	h.renderHTML(ctx, w, http.StatusOK, "event_clubs", eventClubsView{Title: clubs.Event.Name, EventClubs: clubs})
}

func (h *Handler) ClubTeamsPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Page.ClubTeams")
	defer span.End()

	req := clubTeamsRequest{EventID: pathParam(r, "eventID"), ClubID: pathParam(r, "clubID")}
	if err := h.validateRequest(ctx, req); err != nil {
		h.renderError(ctx, w, err)
		return
	}

	roster, err := h.events.ListClubTeams(ctx, req.EventID, req.ClubID)
	if err != nil {
		h.logger.WarnContext(ctx, "list club teams failed", "event_id", req.EventID, "club_id", req.ClubID, "error", err)
		h.renderError(ctx, w, err)
		return
	}

	h.renderHTML(ctx, w, http.StatusOK, "club_teams", clubTeamsView{Title: roster.ClubName, ClubRoster: roster})
}

func (h *Handler) TeamPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Page.TeamPage")
	defer span.End()

	req, err := h.parseTeamRequest(r.WithContext(ctx))
	if err != nil {
		h.renderError(ctx, w, err)
		return
	}

	page, err := h.pages.Build(ctx, usecase.TeamPageQuery{
		EventID:    req.EventID,
		DivisionID: req.DivisionID,
		TeamID:     req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "build team page failed", "event_id", req.EventID, "team_id", req.TeamID, "error", err)
		h.renderError(ctx, w, err)
		return
	}

	h.renderHTML(ctx, w, http.StatusOK, "team_page", newTeamPageView(page))
}

func (h *Handler) SchedulePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Page.Schedule")
	defer span.End()

	req, err := h.parseScheduleRequest(r.WithContext(ctx))
	if err != nil {
		h.renderError(ctx, w, err)
		return
	}

	sched, err := h.schedules.GetTeamSchedule(ctx, req.query())
	if err != nil {
		h.logger.WarnContext(ctx, "get team schedule failed", "event_id", req.EventID, "team_id", req.TeamID, "when", req.When, "error", err)
		h.renderError(ctx, w, err)
		return
	}

	h.renderHTML(ctx, w, http.StatusOK, "schedule", scheduleView{
		Title: whenLabel(sched.When) + " schedule",
		Team:  req.teamRequest,
		View:  req.View,
		Section: scheduleSection{
			EventID:    req.EventID,
			DivisionID: req.DivisionID,
			TeamID:     req.TeamID,
			Schedule:   sched,
		},
	})
}

func (h *Handler) renderHTML(ctx context.Context, w http.ResponseWriter, status int, name string, data any) {
	if err := h.renderer.HTML(w, status, name, data); err != nil {
		h.logger.ErrorContext(ctx, "render template failed", "template", name, "error", err)
	}
}

func (h *Handler) renderError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	msg := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		msg = "internal server error"
	}
	h.renderHTML(ctx, w, mapped.HTTPStatus, "error", errorView{
		Title:   http.StatusText(mapped.HTTPStatus),
		Status:  mapped.HTTPStatus,
		Message: msg,
	})
}
