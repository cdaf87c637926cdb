package httpapi

import (
	"net/http"
)

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	window, err := h.parseEventWindow(r.WithContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	events, err := h.events.ListEvents(ctx, window)
	if err != nil {
		h.logger.WarnContext(ctx, "list events failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eventListingDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventListingToDTO(e))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetEventClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventClubs")
	defer span.End()

	req := eventRequest{EventID: pathParam(r, "eventID")}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	clubs, err := h.events.GetEventClubs(ctx, req.EventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get event clubs failed", "event_id", req.EventID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, eventClubsToDTO(clubs))
}

func (h *Handler) ListClubTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubTeams")
	defer span.End()

	req := clubTeamsRequest{EventID: pathParam(r, "eventID"), ClubID: pathParam(r, "clubID")}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.events.ListClubTeams(ctx, req.EventID, req.ClubID)
	if err != nil {
		h.logger.WarnContext(ctx, "list club teams failed", "event_id", req.EventID, "club_id", req.ClubID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, clubRosterToDTO(roster))
}

func (h *Handler) GetTeamInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamInfo")
	defer span.End()

	teamID, err := parseTeamIDParam(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := teamInfoRequest{EventID: pathParam(r, "eventID"), TeamID: teamID}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.teams.GetTeamInfo(ctx, req.EventID, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team info failed", "event_id", req.EventID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamInfoToDTO(team))
}

func (h *Handler) GetTeamSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamSchedule")
	defer span.End()

	req, err := h.parseScheduleRequest(r.WithContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sched, err := h.schedules.GetTeamSchedule(ctx, req.query())
	if err != nil {
		h.logger.WarnContext(ctx, "get team schedule failed",
			"event_id", req.EventID,
			"division_id", req.DivisionID,
			"team_id", req.TeamID,
			"when", req.When,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, scheduleToDTO(sched))
}
