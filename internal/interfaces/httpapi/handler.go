package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jackwardell/partypeople/internal/platform/logging"
	"github.com/jackwardell/partypeople/internal/usecase"
)

const dateLayout = "2006-01-02"

type Handler struct {
	digests     *usecase.DigestService
	sweepstakes *usecase.SweepstakeService
	jobs        *usecase.JobService
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(
	digests *usecase.DigestService,
	sweepstakes *usecase.SweepstakeService,
	jobs *usecase.JobService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		digests:     digests,
		sweepstakes: sweepstakes,
		jobs:        jobs,
		logger:      logger,
		validator:   validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetSweepstake(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSweepstake")
	defer span.End()

	sc, err := h.sweepstakes.SweepstakeContext(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get sweepstake failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sweepstakeToDTO(sc))
}

type dateRequest struct {
	Date string `validate:"required,datetime=2006-01-02"`
	View string `validate:"omitempty,oneof=all morning evening"`
}

// GetDate accepts an ISO date or one of today, tomorrow and yesterday.
func (h *Handler) GetDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDate")
	defer span.End()

	req := dateRequest{
		Date: h.resolveDate(strings.TrimSpace(r.PathValue("date"))),
		View: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("view"))),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	day, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid date %q", usecase.ErrInvalidInput, req.Date))
		return
	}

	dc, err := h.digests.DateContext(ctx, day)
	if err != nil {
		h.logger.WarnContext(ctx, "get date context failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dateToDTO(dc, req.View))
}

type userRequest struct {
	UserID int64 `validate:"required,gt=0"`
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUser")
	defer span.End()

	userID, err := parseID(r.PathValue("userID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, userRequest{UserID: userID}); err != nil {
		writeError(ctx, w, err)
		return
	}

	uc, err := h.digests.UserContext(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get user context failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(uc))
}

func (h *Handler) GetFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixture")
	defer span.End()

	fixtureID, err := parseID(r.PathValue("fixtureID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fc, err := h.digests.FixtureContext(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "get fixture context failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(fc))
}

// RunJob triggers a scheduled job on demand.
func (h *Handler) RunJob(job usecase.JobName) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.Handler.RunJob")
		defer span.End()

		if h.jobs == nil {
			writeError(ctx, w, fmt.Errorf("%w: job service is not configured", usecase.ErrDependencyUnavailable))
			return
		}

		started := time.Now()
		result, err := h.jobs.Run(ctx, job)
		if err != nil {
			h.logger.WarnContext(ctx, "run internal job failed", "job", job, "error", err)
			writeError(ctx, w, err)
			return
		}
		h.logger.InfoContext(ctx, "internal job finished", "job", job, "duration", time.Since(started))

		writeSuccess(ctx, w, http.StatusOK, result)
	})
}

func (h *Handler) resolveDate(raw string) string {
	today := h.digests.Today()
	switch strings.ToLower(raw) {
	case "today":
		return today.Format(dateLayout)
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format(dateLayout)
	case "yesterday":
		return today.AddDate(0, 0, -1).Format(dateLayout)
	default:
		return raw
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q", usecase.ErrInvalidInput, raw)
	}
	return id, nil
}
