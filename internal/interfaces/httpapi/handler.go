package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fantasy-projections/internal/infrastructure/scheduler"
	"github.com/riskibarqy/fantasy-projections/internal/platform/logging"
	"github.com/riskibarqy/fantasy-projections/internal/usecase"
)

// JobLister reports the scheduled jobs. A nil lister means the scheduler
// is disabled.
type JobLister interface {
	Jobs() []scheduler.JobInfo
}

type HandlerConfig struct {
	MaxWeek       int
	TriggerSource string
}

type Handler struct {
	importService     *usecase.ImportService
	projectionService *usecase.ProjectionQueryService
	scoringService    *usecase.ScoringConfigService
	jobService        *usecase.JobService
	jobs              JobLister
	cfg               HandlerConfig
	logger            *logging.Logger
	validator         *validator.Validate
	now               func() time.Time
}

func NewHandler(
	importService *usecase.ImportService,
	projectionService *usecase.ProjectionQueryService,
	scoringService *usecase.ScoringConfigService,
	jobService *usecase.JobService,
	jobs JobLister,
	cfg HandlerConfig,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		importService:     importService,
		projectionService: projectionService,
		scoringService:    scoringService,
		jobService:        jobService,
		jobs:              jobs,
		cfg:               cfg,
		logger:            logger.Named("httpapi"),
		validator:         validator.New(),
		now:               time.Now,
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

const maxRequestBodyBytes = 1 << 20

// decodeJSON decodes an optional JSON body into dst. An empty body leaves
// dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
