package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/aes-results/internal/domain/schedule"
	"github.com/riskibarqy/aes-results/internal/platform/logging"
)

type TeamPageQuery struct {
	EventID    string
	DivisionID string
	TeamID     int64
}

// TeamPageService assembles the team page from five independent lookups.
type TeamPageService struct {
	events    *EventService
	teams     *TeamService
	schedules *ScheduleService
	pool      *ants.Pool
	logger    *logging.Logger
}

// NewTeamPageService runs lookups on pool. A nil pool runs them inline.
func NewTeamPageService(events *EventService, teams *TeamService, schedules *ScheduleService, pool *ants.Pool, logger *logging.Logger) *TeamPageService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamPageService{
		events:    events,
		teams:     teams,
		schedules: schedules,
		pool:      pool,
		logger:    logger,
	}
}

func (s *TeamPageService) Build(ctx context.Context, q TeamPageQuery) (schedule.TeamPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamPageService.Build")
	defer span.End()

	q.EventID = strings.TrimSpace(q.EventID)
	q.DivisionID = strings.TrimSpace(q.DivisionID)
	if q.EventID == "" || q.DivisionID == "" {
		return schedule.TeamPage{}, fmt.Errorf("%w: event id and division id are required", ErrInvalidInput)
	}
	if q.TeamID <= 0 {
		return schedule.TeamPage{}, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}

	page := schedule.TeamPage{
		EventID:    q.EventID,
		DivisionID: q.DivisionID,
		TeamID:     q.TeamID,
	}

	scheduleTask := func(when schedule.When, dst *schedule.Schedule) func(context.Context) error {
		return func(ctx context.Context) error {
			got, err := s.schedules.GetTeamSchedule(ctx, ScheduleQuery{
				EventID:    q.EventID,
				DivisionID: q.DivisionID,
				TeamID:     q.TeamID,
				When:       when,
			})
			*dst = got
			return err
		}
	}

	// Each task writes a distinct field of page.
	tasks := []func(context.Context) error{
		func(ctx context.Context) error {
			team, err := s.teams.GetTeamInfo(ctx, q.EventID, q.TeamID)
			page.Team = team
			return err
		},
		func(ctx context.Context) error {
			event, err := s.events.GetEventInfo(ctx, q.EventID)
			page.Event = event
			return err
		},
		scheduleTask(schedule.WhenPast, &page.Past),
		scheduleTask(schedule.WhenCurrent, &page.Current),
		scheduleTask(schedule.WhenFuture, &page.Future),
	}

	if err := s.run(ctx, tasks); err != nil {
		return schedule.TeamPage{}, err
	}
	return page, nil
}

func (s *TeamPageService) run(ctx context.Context, tasks []func(context.Context) error) error {
	errs := make([]error, len(tasks))
	if s.pool == nil {
		for i, task := range tasks {
			errs[i] = task(ctx)
		}
		return errors.Join(errs...)
	}

	var workers sync.WaitGroup
	for i, task := range tasks {
		workers.Add(1)
		if err := s.pool.Submit(func() {
			defer workers.Done()
			errs[i] = task(ctx)
		}); err != nil {
			workers.Done()
			s.logger.WarnContext(ctx, "team page worker pool rejected task, running inline", "error", err)
			errs[i] = task(ctx)
		}
	}
	workers.Wait()

	return errors.Join(errs...)
}
