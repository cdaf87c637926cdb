package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// When selects one of the three schedule shapes of the results service.
type When string

const (
	WhenPast    When = "past"
	WhenCurrent When = "current"
	WhenFuture  When = "future"
)

var AllWhens = []When{WhenPast, WhenCurrent, WhenFuture}

var ErrUnknownWhen = errors.New("unknown schedule selector")

func ParseWhen(raw string) (When, error) {
	when := When(strings.ToLower(strings.TrimSpace(raw)))
	if !when.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownWhen, raw)
	}
	return when, nil
}

func (w When) Valid() bool {
	switch w {
	case WhenPast, WhenCurrent, WhenFuture:
		return true
	default:
		return false
	}
}

func (w When) String() string {
	return string(w)
}

type EventInfo struct {
	ID       string
	Name     string
	Location string
	Date     string
}

type TeamInfo struct {
	Name         string
	ClubName     string
	ClubID       string
	DivisionName string
	DivisionID   string
}

// PlayInfo is the round or pool a match belongs to.
type PlayInfo struct {
	PlayID   string
	FullName string
}

// MatchSummary is the display form shared by past and current schedules.
type MatchSummary struct {
	EventID      string
	DivisionID   string
	PlayID       string
	PlayName     string
	MatchName    string
	MatchTime    string
	MatchTimeRaw string
	Court        string
	Team1        string
	Team2        string
	TeamWorks    bool
	Scores       *string
}

func (m MatchSummary) HasScores() bool {
	return m.Scores != nil
}

func (m MatchSummary) ScoreText() string {
	if m.Scores == nil {
		return ""
	}
	return *m.Scores
}

// FutureProjection is a seeding projection: where the team plays or works
// next if it finishes at RankText.
type FutureProjection struct {
	EventID          string
	RankText         string
	PlayName         string
	PlayID           string
	NextMatchTime    string
	NextMatchTimeRaw string
	NextMatchCourt   string
	WorkTime         string
	WorkTimeRaw      string
	WorkCourt        string
}

// Schedule holds one normalized schedule. Matches is used for past and
// current, Projections for future.
type Schedule struct {
	When        When
	Matches     []MatchSummary
	Projections []FutureProjection
}

func (s Schedule) IsProjection() bool {
	return s.When == WhenFuture
}

func (s Schedule) Len() int {
	if s.IsProjection() {
		return len(s.Projections)
	}
	return len(s.Matches)
}

func EmptySchedule(when When) Schedule {
	if when == WhenFuture {
		return Schedule{When: when, Projections: []FutureProjection{}}
	}
	return Schedule{When: when, Matches: []MatchSummary{}}
}

// EventListing is one row of the rolling-window event search.
type EventListing struct {
	ID       string
	Name     string
	Date     string
	Location string
	City     string
}

type Club struct {
	ID   string
	Name string
}

type Division struct {
	ID        string
	Name      string
	TeamCount int
	Code      string
	ColorHex  string
}

type EventClubs struct {
	Event     EventInfo
	Clubs     []Club
	Divisions []Division
}

type ClubTeam struct {
	ID           string
	Name         string
	Code         string
	Text         string
	DivisionID   string
	DivisionName string
}

type ClubRoster struct {
	Event    EventInfo
	ClubID   string
	ClubName string
	Teams    []ClubTeam
}

// TeamPage aggregates everything shown for one team at an event.
type TeamPage struct {
	EventID    string
	DivisionID string
	TeamID     int64
	Team       TeamInfo
	Event      EventInfo
	Past       Schedule
	Current    Schedule
	Future     Schedule
}
