package httpapi

import (
	"github.com/riskibarqy/aes-results/internal/domain/schedule"
	"github.com/riskibarqy/aes-results/internal/usecase"
)

type eventsView struct {
	Title  string
	Window usecase.EventWindow
	Events []schedule.EventListing
}

type eventClubsView struct {
	Title string
	schedule.EventClubs
}

type clubTeamsView struct {
	Title string
	schedule.ClubRoster
}

// scheduleSection is one schedule plus what its template needs to build
// links back to the single-schedule page.
type scheduleSection struct {
	EventID    string
	DivisionID string
	TeamID     int64
	Schedule   schedule.Schedule
}

type teamPageView struct {
	Title    string
	Page     schedule.TeamPage
	Sections []scheduleSection
}

type scheduleView struct {
	Title   string
	Team    teamRequest
	View    string
	Section scheduleSection
}

type errorView struct {
	Title   string
	Status  int
	Message string
}

func newTeamPageView(page schedule.TeamPage) teamPageView {
	title := page.Team.Name
	if page.Event.Name != "" {
		title += " - " + page.Event.Name
	}
	view := teamPageView{Title: title, Page: page}
	for _, s := range []schedule.Schedule{page.Past, page.Current, page.Future} {
		view.Sections = append(view.Sections, scheduleSection{
			EventID:    page.EventID,
			DivisionID: page.DivisionID,
			TeamID:     page.TeamID,
			Schedule:   s,
		})
	}
	return view
}
