package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/aes-results/internal/domain/results"
	"github.com/riskibarqy/aes-results/internal/domain/schedule"
	"github.com/riskibarqy/aes-results/internal/platform/logging"
)

const maxEventWindowDays = 365

// EventWindow bounds the event search around today, in whole days.
type EventWindow struct {
	DaysBack  int
	DaysAhead int
}

func DefaultEventWindow() EventWindow {
	return EventWindow{DaysBack: 30, DaysAhead: 30}
}

func (w EventWindow) Validate() error {
	if w.DaysBack < 0 || w.DaysBack > maxEventWindowDays {
		return fmt.Errorf("%w: days back must be between 0 and %d", ErrInvalidInput, maxEventWindowDays)
	}
	if w.DaysAhead < 0 || w.DaysAhead > maxEventWindowDays {
		return fmt.Errorf("%w: days ahead must be between 0 and %d", ErrInvalidInput, maxEventWindowDays)
	}
	return nil
}

type EventService struct {
	fetcher       results.Fetcher
	endpoints     results.Endpoints
	defaultWindow EventWindow
	logger        *logging.Logger
	now           func() time.Time
}

func NewEventService(fetcher results.Fetcher, endpoints results.Endpoints, defaultWindow EventWindow, logger *logging.Logger) *EventService {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultWindow.Validate() != nil {
		defaultWindow = DefaultEventWindow()
	}

	return &EventService{
		fetcher:       fetcher,
		endpoints:     endpoints,
		defaultWindow: defaultWindow,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *EventService) DefaultWindow() EventWindow {
	return s.defaultWindow
}

// ListEvents lists events overlapping [today-DaysBack, today+DaysAhead],
// both ends at local midnight.
func (s *EventService) ListEvents(ctx context.Context, window EventWindow) ([]schedule.EventListing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.ListEvents")
	defer span.End()

	if err := window.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	url := s.endpoints.EventSearch(
		results.MidnightDaysFrom(now, -window.DaysBack),
		results.MidnightDaysFrom(now, window.DaysAhead),
	)

	search, _ := fetchAs[results.EventSearch](ctx, s.fetcher, s.logger, url)
	out := make([]schedule.EventListing, 0, len(search.Value))
	for _, item := range search.Value {
		out = append(out, schedule.ProjectEventListing(item))
	}
	return out, nil
}

func (s *EventService) GetEventInfo(ctx context.Context, eventID string) (schedule.EventInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.GetEventInfo")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return schedule.EventInfo{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	event, _ := fetchAs[results.Event](ctx, s.fetcher, s.logger, s.endpoints.Event(eventID))
	return schedule.ProjectEvent(event, eventID), nil
}

// GetEventClubs returns the event heading with its clubs and divisions, all
// read from the one event document.
func (s *EventService) GetEventClubs(ctx context.Context, eventID string) (schedule.EventClubs, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.GetEventClubs")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return schedule.EventClubs{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	event, _ := fetchAs[results.Event](ctx, s.fetcher, s.logger, s.endpoints.Event(eventID))
	return schedule.ProjectClubs(event, eventID), nil
}

func (s *EventService) ListClubTeams(ctx context.Context, eventID, clubID string) (schedule.ClubRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.ListClubTeams")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	clubID = strings.TrimSpace(clubID)
	if eventID == "" || clubID == "" {
		return schedule.ClubRoster{}, fmt.Errorf("%w: event id and club id are required", ErrInvalidInput)
	}

	event, err := s.GetEventInfo(ctx, eventID)
	if err != nil {
		return schedule.ClubRoster{}, err
	}

	roster, _ := fetchAs[results.NextAssignments](ctx, s.fetcher, s.logger, s.endpoints.ClubTeams(eventID, clubID))
	return schedule.ProjectRoster(roster, event, clubID), nil
}
