package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/aes-results/internal/domain/results"
	"github.com/riskibarqy/aes-results/internal/domain/schedule"
	resultsmock "github.com/riskibarqy/aes-results/internal/mocks/domain/results"
	"github.com/stretchr/testify/mock"
)

var testEndpoints = results.NewEndpoints("https://results.test", "https://events.test")

func documentOf(t *testing.T, v any) results.Payload {
	t.Helper()

	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return results.NewDocument(raw)
}

func matchFixture(first, second, work int64, hasScores bool) map[string]any {
	return map[string]any{
		"FirstTeamId":            first,
		"FirstTeamName":          "Team A",
		"FirstTeamWon":           true,
		"SecondTeamId":           second,
		"SecondTeamName":         "Team B",
		"SecondTeamWon":          false,
		"WorkTeamId":             work,
		"MatchFullName":          "Match 1",
		"HasScores":              hasScores,
		"ScheduledStartDateTime": "2023-01-28T11:00:00",
		"Court":                  map[string]any{"Name": "ICC 13"},
		"Sets": []map[string]any{
			{"FirstTeamScore": 25, "SecondTeamScore": 20},
			{"FirstTeamScore": nil, "SecondTeamScore": nil},
		},
	}
}

func TestScheduleService_Past(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fetcher := resultsmock.NewFetcher(t)
	service := NewScheduleService(fetcher, testEndpoints, 2, nil)

	fetcher.
		On("FetchJSON", mock.Anything, testEndpoints.Schedule("EVT", "129475", 3821, "past")).
		Return(documentOf(t, []map[string]any{
			{"Match": matchFixture(3821, 22188, 71429, true), "Play": map[string]any{"PlayId": -57316, "CompleteFullName": "Round 1 Pool 9"}},
			{"Match": nil, "Play": nil},
		})).
		Once()

	got, err := service.GetTeamSchedule(ctx, ScheduleQuery{EventID: "EVT", DivisionID: "129475", TeamID: 3821, When: schedule.WhenPast})
	if err != nil {
		t.Fatalf("get past schedule: %v", err)
	}
	if got.When != schedule.WhenPast || len(got.Matches) != 2 {
		t.Fatalf("unexpected schedule %+v", got)
	}
	if got.Matches[0].PlayName != "Round 1 Pool 9" || got.Matches[0].ScoreText() != "25-20" {
		t.Fatalf("unexpected first summary %+v", got.Matches[0])
	}
	if got.Matches[1].Team1 != "First" || got.Matches[1].MatchTime != "Unknown" {
		t.Fatalf("expected defaults for missing match, got %+v", got.Matches[1])
	}
}

func TestScheduleService_CurrentFiltersAndKeepsPlayOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fetcher := resultsmock.NewFetcher(t)
	service := NewScheduleService(fetcher, testEndpoints, 4, nil)
	const teamID = int64(3821)

	fetcher.
		On("FetchJSON", mock.Anything, testEndpoints.Schedule("EVT", "129475", teamID, "current")).
		Return(documentOf(t, []map[string]any{
			{"Play": map[string]any{"PlayId": -100}},
			{"Play": map[string]any{"PlayId": 0}},
			{"Play": nil},
			{"Play": map[string]any{"PlayId": -200}},
		})).
		Once()

	played := matchFixture(teamID, 1, 5, true)
	worked := matchFixture(1, 2, teamID, true)
	worked["MatchFullName"] = "Match 2"
	unrelated := matchFixture(1, 2, 5, false)
	unrelated["MatchFullName"] = "Match 3"
	fetcher.
		On("FetchJSON", mock.Anything, testEndpoints.PoolSheet("EVT", -100)).
		After(50*time.Millisecond).
		Return(documentOf(t, map[string]any{
			"Pool":    map[string]any{"PlayId": -100, "CompleteFullName": "Round 1 Pool 1"},
			"Matches": []map[string]any{played, unrelated, worked},
		})).
		Once()

	later := matchFixture(2, teamID, 7, false)
	later["MatchFullName"] = "Match 4"
	fetcher.
		On("FetchJSON", mock.Anything, testEndpoints.PoolSheet("EVT", -200)).
		Return(documentOf(t, map[string]any{
			"Pool":    map[string]any{"PlayId": -200, "CompleteFullName": "Round 2 Pool 1"},
			"Matches": []map[string]any{later},
		})).
		Once()

	got, err := service.GetTeamSchedule(ctx, ScheduleQuery{EventID: "EVT", DivisionID: "129475", TeamID: teamID, When: schedule.WhenCurrent})
	if err != nil {
		t.Fatalf("get current schedule: %v", err)
	}

	wantNames := []string{"Match 1", "Match 2", "Match 4"}
	if len(got.Matches) != len(wantNames) {
		t.Fatalf("unexpected match count %d: %+v", len(got.Matches), got.Matches)
	}
	for i, name := range wantNames {
		if got.Matches[i].MatchName != name {
			t.Fatalf("match %d: got %q want %q", i, got.Matches[i].MatchName, name)
		}
	}

	if got.Matches[0].TeamWorks || got.Matches[0].ScoreText() != "25-20" {
		t.Fatalf("expected played match with scores, got %+v", got.Matches[0])
	}
	if !got.Matches[1].TeamWorks || got.Matches[1].HasScores() {
		t.Fatalf("expected work match without scores, got %+v", got.Matches[1])
	}
	if got.Matches[2].PlayName != "Round 2 Pool 1" || got.Matches[2].PlayID != "-200" {
		t.Fatalf("expected play context from pool sheet, got %+v", got.Matches[2])
	}
}

func TestScheduleService_CurrentEmptyWhenUpstreamFails(t *testing.T) {
	t.Parallel()

	fetcher := resultsmock.NewFetcher(t)
	service := NewScheduleService(fetcher, testEndpoints, 0, nil)

	fetcher.
		On("FetchJSON", mock.Anything, mock.AnythingOfType("string")).
		Return(results.EmptyMapping()).
		Once()

	got, err := service.GetTeamSchedule(context.Background(), ScheduleQuery{EventID: "EVT", DivisionID: "1", TeamID: 1, When: schedule.WhenCurrent})
	if err != nil {
		t.Fatalf("get current schedule: %v", err)
	}
	if got.Len() != 0 || got.Matches == nil {
		t.Fatalf("expected empty non-nil matches, got %+v", got)
	}
}

func TestScheduleService_FutureToleratesNulls(t *testing.T) {
	t.Parallel()

	fetcher := resultsmock.NewFetcher(t)
	service := NewScheduleService(fetcher, testEndpoints, 0, nil)

	fetcher.
		On("FetchJSON", mock.Anything, testEndpoints.Schedule("EVT", "1", 9, "future")).
		Return(documentOf(t, []map[string]any{
			{"PotentialRank": 2, "NextMatch": nil, "WorkMatch": nil, "NextPlay": nil},
			{
				"PotentialRankText": "1st-R1 P9 ",
				"NextMatch":         map[string]any{"Court": map[string]any{"Name": "Court 17"}, "ScheduledStartDateTime": "2023-02-05T10:00:00"},
				"NextPlay":          map[string]any{"PlayId": -50979, "CompleteFullName": "Challenge Bracket D"},
			},
		})).
		Once()

	got, err := service.GetTeamSchedule(context.Background(), ScheduleQuery{EventID: "EVT", DivisionID: "1", TeamID: 9, When: schedule.WhenFuture})
	if err != nil {
		t.Fatalf("get future schedule: %v", err)
	}
	if !got.IsProjection() || len(got.Projections) != 2 {
		t.Fatalf("unexpected schedule %+v", got)
	}
	if first := got.Projections[0]; first.RankText != "2" || first.NextMatchCourt != "" || first.WorkTime != "" {
		t.Fatalf("unexpected null projection %+v", first)
	}
	if second := got.Projections[1]; second.NextMatchTime != "2/5 10:00am" || second.PlayName != "Challenge Bracket D" {
		t.Fatalf("unexpected projection %+v", second)
	}
}

func TestScheduleService_WrongShapeIsEmpty(t *testing.T) {
	t.Parallel()

	fetcher := resultsmock.NewFetcher(t)
	service := NewScheduleService(fetcher, testEndpoints, 0, nil)

	fetcher.
		On("FetchJSON", mock.Anything, mock.AnythingOfType("string")).
		Return(documentOf(t, map[string]any{"Message": "An error has occurred."})).
		Once()

	got, err := service.GetTeamSchedule(context.Background(), ScheduleQuery{EventID: "EVT", DivisionID: "1", TeamID: 9, When: schedule.WhenPast})
	if err != nil {
		t.Fatalf("get past schedule: %v", err)
	}
	if len(got.Matches) != 0 {
		t.Fatalf("expected no matches, got %+v", got.Matches)
	}
}

func TestScheduleService_InvalidQuery(t *testing.T) {
	t.Parallel()

	service := NewScheduleService(resultsmock.NewFetcher(t), testEndpoints, 0, nil)

	tests := []ScheduleQuery{
		{EventID: "EVT", DivisionID: "1", TeamID: 1, When: "tomorrow"},
		{EventID: "", DivisionID: "1", TeamID: 1, When: schedule.WhenPast},
		{EventID: "EVT", DivisionID: "1", TeamID: 0, When: schedule.WhenPast},
	}
	for _, q := range tests {
		if _, err := service.GetTeamSchedule(context.Background(), q); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("query %+v: expected ErrInvalidInput, got %v", q, err)
		}
	}
}
