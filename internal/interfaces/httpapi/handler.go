package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/aes-results/internal/platform/logging"
	"github.com/riskibarqy/aes-results/internal/usecase"
	"github.com/unrolled/render"
)

type Handler struct {
	events    *usecase.EventService
	teams     *usecase.TeamService
	schedules *usecase.ScheduleService
	pages     *usecase.TeamPageService
	renderer  *render.Render
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(
	events *usecase.EventService,
	teams *usecase.TeamService,
	schedules *usecase.ScheduleService,
	pages *usecase.TeamPageService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		events:    events,
		teams:     teams,
		schedules: schedules,
		pages:     pages,
		renderer:  newRenderer(),
		logger:    logger,
		validator: newValidator(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
