package results

import "strconv"

// Wire shapes of the results service. Every field is optional: the service
// omits and nulls fields freely, so projections decide the defaults.

// Side names one of the two competing teams of a match. The value doubles as
// the JSON field prefix and as the fallback team label.
type Side string

const (
	SideFirst  Side = "First"
	SideSecond Side = "Second"
)

type Court struct {
	CourtID   *int64  `json:"CourtId"`
	Name      *string `json:"Name"`
	VideoLink *string `json:"VideoLink"`
}

type Play struct {
	Type              *int    `json:"Type"`
	PlayID            *int64  `json:"PlayId"`
	FullName          *string `json:"FullName"`
	ShortName         *string `json:"ShortName"`
	CompleteShortName *string `json:"CompleteShortName"`
	CompleteFullName  *string `json:"CompleteFullName"`
	Order             *int    `json:"Order"`
	Courts            []Court `json:"Courts"`
}

type Set struct {
	FirstTeamScore  Score   `json:"FirstTeamScore"`
	SecondTeamScore Score   `json:"SecondTeamScore"`
	ScoreText       *string `json:"ScoreText"`
	IsDecidingSet   *bool   `json:"IsDecidingSet"`
}

type Match struct {
	MatchID                *int64  `json:"MatchId"`
	FirstTeamID            *int64  `json:"FirstTeamId"`
	FirstTeamName          *string `json:"FirstTeamName"`
	FirstTeamWon           *bool   `json:"FirstTeamWon"`
	FirstTeamText          *string `json:"FirstTeamText"`
	SecondTeamID           *int64  `json:"SecondTeamId"`
	SecondTeamName         *string `json:"SecondTeamName"`
	SecondTeamWon          *bool   `json:"SecondTeamWon"`
	SecondTeamText         *string `json:"SecondTeamText"`
	WorkTeamID             *int64  `json:"WorkTeamId"`
	WorkTeamText           *string `json:"WorkTeamText"`
	MatchFullName          *string `json:"MatchFullName"`
	MatchShortName         *string `json:"MatchShortName"`
	HasScores              *bool   `json:"HasScores"`
	TypeOfOutcome          *int    `json:"TypeOfOutcome"`
	Sets                   []Set   `json:"Sets"`
	Court                  *Court  `json:"Court"`
	ScheduledStartDateTime *string `json:"ScheduledStartDateTime"`
	ScheduledEndDateTime   *string `json:"ScheduledEndDateTime"`
}

func (m Match) TeamName(side Side) *string {
	if side == SideSecond {
		return m.SecondTeamName
	}
	return m.FirstTeamName
}

func (m Match) TeamWon(side Side) bool {
	if side == SideSecond {
		return BoolValue(m.SecondTeamWon)
	}
	return BoolValue(m.FirstTeamWon)
}

func (m Match) Scored() bool {
	return BoolValue(m.HasScores)
}

// Involves reports whether the team plays in or works the match.
func (m Match) Involves(teamID int64) bool {
	return idEquals(m.FirstTeamID, teamID) || idEquals(m.SecondTeamID, teamID) || m.WorkedBy(teamID)
}

func (m Match) WorkedBy(teamID int64) bool {
	return idEquals(m.WorkTeamID, teamID)
}

// PastEntry is one row of the past schedule.
type PastEntry struct {
	Match *Match `json:"Match"`
	Play  *Play  `json:"Play"`
}

// CurrentEntry is one play the team is active in this round.
type CurrentEntry struct {
	Play     *Play   `json:"Play"`
	PlayType *int    `json:"PlayType"`
	Matches  []Match `json:"Matches"`
}

// PoolSheet is the authoritative match listing of one play.
type PoolSheet struct {
	Pool    *Play   `json:"Pool"`
	Matches []Match `json:"Matches"`
}

// ScheduledSlot is a projected match or work assignment without teams.
type ScheduledSlot struct {
	MatchID                *int64  `json:"MatchId"`
	Court                  *Court  `json:"Court"`
	ScheduledStartDateTime *string `json:"ScheduledStartDateTime"`
	ScheduledEndDateTime   *string `json:"ScheduledEndDateTime"`
}

// FutureEntry is one seeding projection of the future schedule.
type FutureEntry struct {
	PotentialRank     *int           `json:"PotentialRank"`
	PotentialRankText *string        `json:"PotentialRankText"`
	NextMatch         *ScheduledSlot `json:"NextMatch"`
	WorkMatch         *ScheduledSlot `json:"WorkMatch"`
	NextPlay          *Play          `json:"NextPlay"`
	PlayType          *int           `json:"PlayType"`
	NextPendingReseed *bool          `json:"NextPendingReseed"`
}

type Club struct {
	ClubID *int64  `json:"ClubId"`
	Name   *string `json:"Name"`
}

type Division struct {
	IsFinished *bool   `json:"IsFinished"`
	DivisionID *int64  `json:"DivisionId"`
	Name       *string `json:"Name"`
	TeamCount  *int    `json:"TeamCount"`
	CodeAlias  *string `json:"CodeAlias"`
	ColorHex   *string `json:"ColorHex"`
}

type Event struct {
	Key       *string    `json:"Key"`
	EventID   *int64     `json:"EventId"`
	Name      *string    `json:"Name"`
	StartDate *string    `json:"StartDate"`
	EndDate   *string    `json:"EndDate"`
	Location  *string    `json:"Location"`
	IsOver    *bool      `json:"IsOver"`
	Clubs     []Club     `json:"Clubs"`
	Divisions []Division `json:"Divisions"`
}

type Team struct {
	TeamID       *int64    `json:"TeamId"`
	TeamName     *string   `json:"TeamName"`
	TeamCode     *string   `json:"TeamCode"`
	TeamText     *string   `json:"TeamText"`
	TeamClub     *Club     `json:"TeamClub"`
	TeamDivision *Division `json:"TeamDivision"`
}

// NextAssignments is the OData roster of a club at an event.
type NextAssignments struct {
	Value []Team `json:"value"`
}

type EventSummary struct {
	ServerSafeKey *string `json:"ServerSafeKey"`
	SchedulerID   *int64  `json:"SchedulerId"`
	Name          *string `json:"Name"`
	StartDate     *string `json:"StartDate"`
	EndDate       *string `json:"EndDate"`
	LocationName  *string `json:"LocationName"`
	City          *string `json:"City"`
}

// EventSearch is the OData event scheduler listing.
type EventSearch struct {
	Value []EventSummary `json:"value"`
}

func StringValue(p *string) string {
	return StringOr(p, "")
}

func StringOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

func BoolValue(p *bool) bool {
	return p != nil && *p
}

// IDString renders an optional numeric id, empty when absent.
func IDString(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}

func idEquals(p *int64, id int64) bool {
	return p != nil && *p == id
}
