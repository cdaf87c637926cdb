package httpapi

import (
	"github.com/riskibarqy/aes-results/internal/domain/schedule"
)

type eventListingDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Location string `json:"location,omitempty"`
	City     string `json:"city,omitempty"`
}

type eventInfoDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Date     string `json:"date"`
}

type clubDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type divisionDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TeamCount int    `json:"team_count"`
	Code      string `json:"code,omitempty"`
	ColorHex  string `json:"color_hex,omitempty"`
}

type eventClubsDTO struct {
	Event     eventInfoDTO  `json:"event"`
	Clubs     []clubDTO     `json:"clubs"`
	Divisions []divisionDTO `json:"divisions"`
}

type clubTeamDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code,omitempty"`
	Text         string `json:"text,omitempty"`
	DivisionID   string `json:"division_id"`
	DivisionName string `json:"division_name"`
}

type clubRosterDTO struct {
	Event    eventInfoDTO  `json:"event"`
	ClubID   string        `json:"club_id"`
	ClubName string        `json:"club_name"`
	Teams    []clubTeamDTO `json:"teams"`
}

type teamInfoDTO struct {
	Name         string `json:"team_name"`
	ClubName     string `json:"club_name"`
	ClubID       string `json:"club_id"`
	DivisionName string `json:"division_name"`
	DivisionID   string `json:"division_id"`
}

// matchDTO keeps scores null when the match has none, so clients can tell
// "no scores" from an empty score string.
type matchDTO struct {
	EventID      string  `json:"event_id"`
	DivisionID   string  `json:"division_id"`
	PlayID       string  `json:"play_id"`
	PlayName     string  `json:"play_name"`
	MatchName    string  `json:"match_name"`
	MatchTime    string  `json:"match_time"`
	MatchTimeRaw string  `json:"match_time_raw"`
	Court        string  `json:"court"`
	Team1        string  `json:"team_1_name"`
	Team2        string  `json:"team_2_name"`
	TeamWorks    bool    `json:"team_works_this_match"`
	Scores       *string `json:"scores"`
	Line         string  `json:"line"`
}

type projectionDTO struct {
	EventID          string `json:"event_id"`
	RankText         string `json:"rank_text"`
	PlayName         string `json:"play_name"`
	PlayID           string `json:"play_id"`
	NextMatchTime    string `json:"next_match_time"`
	NextMatchTimeRaw string `json:"next_match_time_raw"`
	NextMatchCourt   string `json:"next_match_court"`
	WorkTime         string `json:"work_time"`
	WorkTimeRaw      string `json:"work_time_raw"`
	WorkCourt        string `json:"work_court"`
	Line             string `json:"line"`
}

type scheduleDTO struct {
	When        string          `json:"when"`
	Matches     []matchDTO      `json:"matches,omitempty"`
	Projections []projectionDTO `json:"projections,omitempty"`
}

func eventListingToDTO(e schedule.EventListing) eventListingDTO {
	return eventListingDTO{ID: e.ID, Name: e.Name, Date: e.Date, Location: e.Location, City: e.City}
}

func eventInfoToDTO(e schedule.EventInfo) eventInfoDTO {
	return eventInfoDTO{ID: e.ID, Name: e.Name, Location: e.Location, Date: e.Date}
}

func eventClubsToDTO(in schedule.EventClubs) eventClubsDTO {
	out := eventClubsDTO{
		Event:     eventInfoToDTO(in.Event),
		Clubs:     make([]clubDTO, 0, len(in.Clubs)),
		Divisions: make([]divisionDTO, 0, len(in.Divisions)),
	}
	for _, c := range in.Clubs {
		out.Clubs = append(out.Clubs, clubDTO{ID: c.ID, Name: c.Name})
	}
	for _, d := range in.Divisions {
		out.Divisions = append(out.Divisions, divisionDTO{
			ID:        d.ID,
			Name:      d.Name,
			TeamCount: d.TeamCount,
			Code:      d.Code,
			ColorHex:  d.ColorHex,
		})
	}
	return out
}

func clubRosterToDTO(in schedule.ClubRoster) clubRosterDTO {
	out := clubRosterDTO{
		Event:    eventInfoToDTO(in.Event),
		ClubID:   in.ClubID,
		ClubName: in.ClubName,
		Teams:    make([]clubTeamDTO, 0, len(in.Teams)),
	}
	for _, t := range in.Teams {
		out.Teams = append(out.Teams, clubTeamDTO{
			ID:           t.ID,
			Name:         t.Name,
			Code:         t.Code,
			Text:         t.Text,
			DivisionID:   t.DivisionID,
			DivisionName: t.DivisionName,
		})
	}
	return out
}

func teamInfoToDTO(t schedule.TeamInfo) teamInfoDTO {
	return teamInfoDTO{
		Name:         t.Name,
		ClubName:     t.ClubName,
		ClubID:       t.ClubID,
		DivisionName: t.DivisionName,
		DivisionID:   t.DivisionID,
	}
}

func scheduleToDTO(s schedule.Schedule) scheduleDTO {
	out := scheduleDTO{When: s.When.String()}
	if s.IsProjection() {
		out.Projections = make([]projectionDTO, 0, len(s.Projections))
		for _, p := range s.Projections {
			out.Projections = append(out.Projections, projectionDTO{
				EventID:          p.EventID,
				RankText:         p.RankText,
				PlayName:         p.PlayName,
				PlayID:           p.PlayID,
				NextMatchTime:    p.NextMatchTime,
				NextMatchTimeRaw: p.NextMatchTimeRaw,
				NextMatchCourt:   p.NextMatchCourt,
				WorkTime:         p.WorkTime,
				WorkTimeRaw:      p.WorkTimeRaw,
				WorkCourt:        p.WorkCourt,
				Line:             p.Line(),
			})
		}
		return out
	}

	out.Matches = make([]matchDTO, 0, len(s.Matches))
	for _, m := range s.Matches {
		out.Matches = append(out.Matches, matchDTO{
			EventID:      m.EventID,
			DivisionID:   m.DivisionID,
			PlayID:       m.PlayID,
			PlayName:     m.PlayName,
			MatchName:    m.MatchName,
			MatchTime:    m.MatchTime,
			MatchTimeRaw: m.MatchTimeRaw,
			Court:        m.Court,
			Team1:        m.Team1,
			Team2:        m.Team2,
			TeamWorks:    m.TeamWorks,
			Scores:       m.Scores,
			Line:         m.Line(),
		})
	}
	return out
}
