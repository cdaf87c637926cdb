package schedule

import (
	"fmt"
	"strconv"

	"github.com/riskibarqy/aes-results/internal/domain/results"
)

// Summarize builds the display record of one raw match. teamWorks marks a
// match the queried team officiates; such a match never carries scores.
func Summarize(raw results.Match, play PlayInfo, eventID, divisionID string, teamWorks bool) MatchSummary {
	start := results.StringValue(raw.ScheduledStartDateTime)

	summary := MatchSummary{
		EventID:      eventID,
		DivisionID:   divisionID,
		PlayID:       play.PlayID,
		PlayName:     play.FullName,
		MatchName:    results.StringValue(raw.MatchFullName),
		MatchTime:    FormatTime(start),
		MatchTimeRaw: start,
		Court:        courtName(raw.Court),
		Team1:        TeamLabel(raw, results.SideFirst),
		Team2:        TeamLabel(raw, results.SideSecond),
		TeamWorks:    teamWorks,
	}
	if raw.Scored() && !teamWorks {
		scores := FormatScores(raw.Sets)
		summary.Scores = &scores
	}
	return summary
}

func PlayInfoFrom(play *results.Play) PlayInfo {
	if play == nil {
		return PlayInfo{}
	}
	return PlayInfo{
		PlayID:   results.IDString(play.PlayID),
		FullName: results.StringValue(play.CompleteFullName),
	}
}

// ProjectEvent maps the event document. The requested id stands in for a
// missing Key.
func ProjectEvent(raw results.Event, requestedID string) EventInfo {
	return EventInfo{
		ID:       results.StringOr(raw.Key, requestedID),
		Name:     results.StringValue(raw.Name),
		Location: results.StringValue(raw.Location),
		Date:     DatePart(results.StringValue(raw.StartDate)),
	}
}

func ProjectTeam(raw results.Team, teamID int64) TeamInfo {
	info := TeamInfo{
		Name: results.StringOr(raw.TeamName, fmt.Sprintf("Team %d", teamID)),
	}
	if raw.TeamClub != nil {
		info.ClubName = results.StringValue(raw.TeamClub.Name)
		info.ClubID = results.IDString(raw.TeamClub.ClubID)
	}
	if raw.TeamDivision != nil {
		info.DivisionName = results.StringValue(raw.TeamDivision.Name)
		info.DivisionID = results.IDString(raw.TeamDivision.DivisionID)
	}
	return info
}

// ProjectFuture maps one seeding projection. A missing NextMatch, WorkMatch
// or court leaves its time and court fields empty.
func ProjectFuture(raw results.FutureEntry, eventID string) FutureProjection {
	projection := FutureProjection{
		EventID:  eventID,
		RankText: rankText(raw),
	}
	if raw.NextPlay != nil {
		projection.PlayName = results.StringValue(raw.NextPlay.CompleteFullName)
		projection.PlayID = results.IDString(raw.NextPlay.PlayID)
	}
	projection.NextMatchTimeRaw, projection.NextMatchTime, projection.NextMatchCourt = slotFields(raw.NextMatch)
	projection.WorkTimeRaw, projection.WorkTime, projection.WorkCourt = slotFields(raw.WorkMatch)
	return projection
}

func ProjectEventListing(raw results.EventSummary) EventListing {
	return EventListing{
		ID:       results.StringValue(raw.ServerSafeKey),
		Name:     results.StringOr(raw.Name, "Unknown"),
		Date:     DatePart(results.StringValue(raw.StartDate)),
		Location: results.StringValue(raw.LocationName),
		City:     results.StringValue(raw.City),
	}
}

func ProjectClubs(raw results.Event, requestedID string) EventClubs {
	out := EventClubs{
		Event:     ProjectEvent(raw, requestedID),
		Clubs:     make([]Club, 0, len(raw.Clubs)),
		Divisions: make([]Division, 0, len(raw.Divisions)),
	}
	for _, club := range raw.Clubs {
		out.Clubs = append(out.Clubs, Club{
			ID:   results.IDString(club.ClubID),
			Name: results.StringOr(club.Name, "Unknown"),
		})
	}
	for _, division := range raw.Divisions {
		out.Divisions = append(out.Divisions, projectDivision(division))
	}
	return out
}

// ProjectRoster maps a club's next-assignment listing. The club name comes
// from the first row.
func ProjectRoster(raw results.NextAssignments, event EventInfo, clubID string) ClubRoster {
	roster := ClubRoster{
		Event:  event,
		ClubID: clubID,
		Teams:  make([]ClubTeam, 0, len(raw.Value)),
	}
	if len(raw.Value) > 0 && raw.Value[0].TeamClub != nil {
		roster.ClubName = results.StringValue(raw.Value[0].TeamClub.Name)
	}
	for _, team := range raw.Value {
		item := ClubTeam{
			ID:           results.IDString(team.TeamID),
			Name:         results.StringOr(team.TeamName, "Unknown"),
			Code:         results.StringValue(team.TeamCode),
			Text:         results.StringValue(team.TeamText),
			DivisionName: "Unknown",
		}
		if team.TeamDivision != nil {
			item.DivisionID = results.IDString(team.TeamDivision.DivisionID)
			item.DivisionName = results.StringOr(team.TeamDivision.Name, "Unknown")
		}
		roster.Teams = append(roster.Teams, item)
	}
	return roster
}

func projectDivision(raw results.Division) Division {
	division := Division{
		ID:       results.IDString(raw.DivisionID),
		Name:     results.StringValue(raw.Name),
		Code:     results.StringValue(raw.CodeAlias),
		ColorHex: results.StringValue(raw.ColorHex),
	}
	if raw.TeamCount != nil {
		division.TeamCount = *raw.TeamCount
	}
	return division
}

func rankText(raw results.FutureEntry) string {
	if raw.PotentialRankText != nil {
		return *raw.PotentialRankText
	}
	if raw.PotentialRank != nil {
		return strconv.Itoa(*raw.PotentialRank)
	}
	return ""
}

func slotFields(slot *results.ScheduledSlot) (raw, formatted, court string) {
	if slot == nil {
		return "", "", ""
	}
	raw = results.StringValue(slot.ScheduledStartDateTime)
	return raw, FormatTime(raw), courtName(slot.Court)
}

func courtName(court *results.Court) string {
	if court == nil {
		return ""
	}
	return results.StringValue(court.Name)
}
