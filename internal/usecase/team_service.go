package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/aes-results/internal/domain/results"
	"github.com/riskibarqy/aes-results/internal/domain/schedule"
	"github.com/riskibarqy/aes-results/internal/platform/logging"
)

type TeamService struct {
	fetcher   results.Fetcher
	endpoints results.Endpoints
	logger    *logging.Logger
}

func NewTeamService(fetcher results.Fetcher, endpoints results.Endpoints, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{
		fetcher:   fetcher,
		endpoints: endpoints,
		logger:    logger,
	}
}

// GetTeamInfo returns the team's name, club and division. Missing club or
// division data leaves those fields empty.
func (s *TeamService) GetTeamInfo(ctx context.Context, eventID string, teamID int64) (schedule.TeamInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeamInfo")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return schedule.TeamInfo{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	if teamID <= 0 {
		return schedule.TeamInfo{}, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}

	team, _ := fetchAs[results.Team](ctx, s.fetcher, s.logger, s.endpoints.Team(eventID, teamID))
	return schedule.ProjectTeam(team, teamID), nil
}
