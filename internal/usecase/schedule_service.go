package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/aes-results/internal/domain/results"
	"github.com/riskibarqy/aes-results/internal/domain/schedule"
	"github.com/riskibarqy/aes-results/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

const defaultPoolSheetConcurrency = 4

type ScheduleQuery struct {
	EventID    string
	DivisionID string
	TeamID     int64
	When       schedule.When
}

func (q ScheduleQuery) Validate() error {
	if strings.TrimSpace(q.EventID) == "" || strings.TrimSpace(q.DivisionID) == "" {
		return fmt.Errorf("%w: event id and division id are required", ErrInvalidInput)
	}
	if q.TeamID <= 0 {
		return fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}
	if !q.When.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidInput, schedule.ErrUnknownWhen, q.When)
	}
	return nil
}

type ScheduleService struct {
	fetcher              results.Fetcher
	endpoints            results.Endpoints
	poolSheetConcurrency int
	logger               *logging.Logger
}

func NewScheduleService(fetcher results.Fetcher, endpoints results.Endpoints, poolSheetConcurrency int, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	if poolSheetConcurrency < 1 {
		poolSheetConcurrency = defaultPoolSheetConcurrency
	}
	return &ScheduleService{
		fetcher:              fetcher,
		endpoints:            endpoints,
		poolSheetConcurrency: poolSheetConcurrency,
		logger:               logger,
	}
}

// GetTeamSchedule normalizes one of the team's schedules. Upstream failures
// give an empty schedule; only an invalid query is an error.
func (s *ScheduleService) GetTeamSchedule(ctx context.Context, q ScheduleQuery) (schedule.Schedule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.GetTeamSchedule")
	defer span.End()

	if err := q.Validate(); err != nil {
		return schedule.Schedule{}, err
	}

	switch q.When {
	case schedule.WhenPast:
		return schedule.Schedule{When: q.When, Matches: s.pastMatches(ctx, q)}, nil
	case schedule.WhenCurrent:
		return schedule.Schedule{When: q.When, Matches: s.currentMatches(ctx, q)}, nil
	default:
		return schedule.Schedule{When: q.When, Projections: s.futureProjections(ctx, q)}, nil
	}
}

func (s *ScheduleService) scheduleURL(q ScheduleQuery) string {
	return s.endpoints.Schedule(q.EventID, q.DivisionID, q.TeamID, q.When.String())
}

// pastMatches summarizes every {Match, Play} pair. The endpoint only returns
// the team's own matches, so nothing is filtered.
func (s *ScheduleService) pastMatches(ctx context.Context, q ScheduleQuery) []schedule.MatchSummary {
	entries, _ := fetchAs[[]results.PastEntry](ctx, s.fetcher, s.logger, s.scheduleURL(q))

	out := make([]schedule.MatchSummary, 0, len(entries))
	for _, entry := range entries {
		var match results.Match
		if entry.Match != nil {
			match = *entry.Match
		}
		out = append(out, s.summarize(ctx, match, schedule.PlayInfoFrom(entry.Play), q, false))
	}
	return out
}

// currentMatches resolves each active play through its pool sheet and keeps
// the matches the team plays or works. Pool sheets are fetched in parallel;
// the output follows play order and then pool sheet order.
func (s *ScheduleService) currentMatches(ctx context.Context, q ScheduleQuery) []schedule.MatchSummary {
	groups, _ := fetchAs[[]results.CurrentEntry](ctx, s.fetcher, s.logger, s.scheduleURL(q))

	playIDs := make([]int64, 0, len(groups))
	for _, group := range groups {
		if group.Play == nil || group.Play.PlayID == nil || *group.Play.PlayID == 0 {
			continue
		}
		playIDs = append(playIDs, *group.Play.PlayID)
	}
	if len(playIDs) == 0 {
		return []schedule.MatchSummary{}
	}

	mapper := iter.Mapper[int64, []schedule.MatchSummary]{MaxGoroutines: s.poolSheetConcurrency}
	perPlay := mapper.Map(playIDs, func(playID *int64) []schedule.MatchSummary {
		return s.poolSheetMatches(ctx, q, *playID)
	})

	out := make([]schedule.MatchSummary, 0, len(playIDs))
	for _, matches := range perPlay {
		out = append(out, matches...)
	}
	return out
}

func (s *ScheduleService) poolSheetMatches(ctx context.Context, q ScheduleQuery, playID int64) []schedule.MatchSummary {
	sheet, _ := fetchAs[results.PoolSheet](ctx, s.fetcher, s.logger, s.endpoints.PoolSheet(q.EventID, playID))
	play := schedule.PlayInfoFrom(sheet.Pool)

	out := make([]schedule.MatchSummary, 0, len(sheet.Matches))
	for _, match := range sheet.Matches {
		if !match.Involves(q.TeamID) {
			continue
		}
		out = append(out, s.summarize(ctx, match, play, q, match.WorkedBy(q.TeamID)))
	}
	return out
}

func (s *ScheduleService) futureProjections(ctx context.Context, q ScheduleQuery) []schedule.FutureProjection {
	entries, _ := fetchAs[[]results.FutureEntry](ctx, s.fetcher, s.logger, s.scheduleURL(q))

	out := make([]schedule.FutureProjection, 0, len(entries))
	for _, entry := range entries {
		projection := schedule.ProjectFuture(entry, q.EventID)
		logUnparsedTime(ctx, s.logger, "next_match_time", projection.NextMatchTimeRaw)
		logUnparsedTime(ctx, s.logger, "work_time", projection.WorkTimeRaw)
		out = append(out, projection)
	}
	return out
}

func (s *ScheduleService) summarize(ctx context.Context, match results.Match, play schedule.PlayInfo, q ScheduleQuery, teamWorks bool) schedule.MatchSummary {
	summary := schedule.Summarize(match, play, q.EventID, q.DivisionID, teamWorks)
	logUnparsedTime(ctx, s.logger, "match_time", summary.MatchTimeRaw)
	return summary
}
