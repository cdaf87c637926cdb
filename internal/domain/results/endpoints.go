package results

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultResultsBaseURL = "https://results.advancedeventsystems.com"
	DefaultEventsBaseURL  = "https://advancedeventsystems.com"

	// eventSearchTimeLayout keeps milliseconds and the zone offset ("Z" in UTC).
	eventSearchTimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Endpoints builds the URLs of the results service.
type Endpoints struct {
	resultsBaseURL string
	eventsBaseURL  string
}

func NewEndpoints(resultsBaseURL, eventsBaseURL string) Endpoints {
	return Endpoints{
		resultsBaseURL: normalizeBaseURL(resultsBaseURL, DefaultResultsBaseURL),
		eventsBaseURL:  normalizeBaseURL(eventsBaseURL, DefaultEventsBaseURL),
	}
}

func (e Endpoints) Event(eventID string) string {
	return fmt.Sprintf("%s/api/event/%s", e.results(), url.PathEscape(eventID))
}

func (e Endpoints) Team(eventID string, teamID int64) string {
	return fmt.Sprintf("%s/api/event/%s/teams/%d", e.results(), url.PathEscape(eventID), teamID)
}

func (e Endpoints) Schedule(eventID, divisionID string, teamID int64, when string) string {
	return fmt.Sprintf("%s/api/event/%s/division/%s/team/%d/schedule/%s",
		e.results(), url.PathEscape(eventID), url.PathEscape(divisionID), teamID, url.PathEscape(when))
}

func (e Endpoints) PoolSheet(eventID string, playID int64) string {
	return fmt.Sprintf("%s/api/event/%s/poolsheet/%d", e.results(), url.PathEscape(eventID), playID)
}

func (e Endpoints) ClubTeams(eventID, clubID string) string {
	return fmt.Sprintf("%s/odata/%s/nextassignments(dId=null,cId=%s,tIds=[])?$orderby=TeamName,TeamCode",
		e.results(), url.PathEscape(eventID), url.PathEscape(clubID))
}

// EventSearch lists events that end after start and begin before end.
func (e Endpoints) EventSearch(start, end time.Time) string {
	return fmt.Sprintf("%s/odata/events/scheduler?$orderby=StartDate,Name&$filter=(EndDate+gt+%s+and+StartDate+lt+%s)",
		e.events(),
		url.QueryEscape(start.Format(eventSearchTimeLayout)),
		url.QueryEscape(end.Format(eventSearchTimeLayout)),
	)
}

func (e Endpoints) results() string {
	if e.resultsBaseURL == "" {
		return DefaultResultsBaseURL
	}
	return e.resultsBaseURL
}

func (e Endpoints) events() string {
	if e.eventsBaseURL == "" {
		return DefaultEventsBaseURL
	}
	return e.eventsBaseURL
}

// EndpointLabel classifies a results URL for metrics and logs.
func EndpointLabel(rawURL string) string {
	path := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		path = parsed.Path
	}
	path = strings.ToLower(path)

	switch {
	case strings.Contains(path, "/poolsheet/"):
		return "poolsheet"
	case strings.Contains(path, "/schedule/"):
		return "schedule_" + path[strings.LastIndex(path, "/")+1:]
	case strings.Contains(path, "/nextassignments"):
		return "club_teams"
	case strings.HasSuffix(path, "/odata/events/scheduler"):
		return "event_search"
	case strings.Contains(path, "/teams/"):
		return "team"
	case strings.HasPrefix(path, "/api/event/"):
		return "event"
	default:
		return "other"
	}
}

// MidnightDaysFrom returns local midnight of the day numDays away from now.
func MidnightDaysFrom(now time.Time, numDays int) time.Time {
	shifted := now.AddDate(0, 0, numDays)
	return time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, shifted.Location())
}

func normalizeBaseURL(raw, fallback string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return fallback
	}
	return raw
}

// ParseTeamID coerces a route segment into a team id.
func ParseTeamID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("team id %q is not numeric", raw)
	}
	return id, nil
}
