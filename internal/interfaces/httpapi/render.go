package httpapi

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"

	"github.com/riskibarqy/aes-results/internal/domain/schedule"
	"github.com/unrolled/render"
)

//go:embed templates
var templates embed.FS

func newRenderer() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
		Funcs: []template.FuncMap{
			{
				"pathEscape":   url.PathEscape,
				"whenLabel":    whenLabel,
				"matchesURL":   matchesURL,
				"scheduleURL":  scheduleURL,
				"clubTeamsURL": clubTeamsURL,
			},
		},
	})
}

func whenLabel(w schedule.When) string {
	switch w {
	case schedule.WhenPast:
		return "Past"
	case schedule.WhenCurrent:
		return "Current"
	case schedule.WhenFuture:
		return "Future"
	default:
		return string(w)
	}
}

func matchesURL(eventID, divisionID string, teamID int64) string {
	return "/matches/" + url.PathEscape(eventID) + "/" + url.PathEscape(divisionID) + "/" + strconv.FormatInt(teamID, 10)
}

func scheduleURL(eventID, divisionID string, teamID int64, when schedule.When, view string) string {
	u := matchesURL(eventID, divisionID, teamID) + "/" + url.PathEscape(when.String())
	if view != "" {
		u += "?view=" + url.QueryEscape(view)
	}
	return u
}

func clubTeamsURL(eventID, clubID string) string {
	return "/event_club_teams/" + url.PathEscape(eventID) + "/" + url.PathEscape(clubID)
}
