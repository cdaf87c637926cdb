package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics == nil {
		return
	}

	mux.Handle("GET /metrics", metrics)
}

func registerPageRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Root)
	mux.HandleFunc("GET /events", handler.EventsPage)
	mux.HandleFunc("GET /event_clubs/{eventID}", handler.EventClubsPage)
	mux.HandleFunc("GET /event_club_teams/{eventID}/{clubID}", handler.ClubTeamsPage)
	mux.HandleFunc("GET /matches/{eventID}/{divisionID}/{teamID}", handler.TeamPage)
	mux.HandleFunc("GET /matches/{eventID}/{divisionID}/{teamID}/{when}", handler.SchedulePage)
}

func registerAPIRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/v1/events", handler.ListEvents)
	mux.HandleFunc("GET /api/v1/events/{eventID}", handler.GetEventClubs)
	mux.HandleFunc("GET /api/v1/events/{eventID}/clubs/{clubID}/teams", handler.ListClubTeams)
	mux.HandleFunc("GET /api/v1/events/{eventID}/teams/{teamID}", handler.GetTeamInfo)
	mux.HandleFunc("GET /api/v1/events/{eventID}/divisions/{divisionID}/teams/{teamID}/schedule/{when}", handler.GetTeamSchedule)
}
