package usecase

import (
	"context"
	"fmt"

	"github.com/jackwardell/partypeople/internal/platform/logging"
)

const (
	morningHeader = "Good morning party people, here are the today's matches 👇"
	eveningHeader = "Good evening party people, here are the today's results 👇"
)

// ChatPublisher posts into the group chat.
type ChatPublisher interface {
	SendMessage(ctx context.Context, text string) (int64, error)
	ReplyMessage(ctx context.Context, replyToMessageID int64, text string) (int64, error)
}

type JobName string

const (
	JobIngest        JobName = "ingest"
	JobMorningDigest JobName = "morning-digest"
	JobEveningDigest JobName = "evening-digest"
)

type JobResult struct {
	Job        JobName       `json:"job"`
	Ingest     *IngestResult `json:"ingest,omitempty"`
	MessageIDs []int64       `json:"message_ids,omitempty"`
}

// JobService runs the scheduled jobs. Cron and the internal HTTP triggers share it.
type JobService struct {
	ingestion *IngestionService
	digests   *DigestService
	publisher ChatPublisher
	logger    *logging.Logger
}

func NewJobService(ingestion *IngestionService, digests *DigestService, publisher ChatPublisher, logger *logging.Logger) *JobService {
	if logger == nil {
		logger = logging.Default()
	}
	return &JobService{
		ingestion: ingestion,
		digests:   digests,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *JobService) Run(ctx context.Context, job JobName) (JobResult, error) {
	switch job {
	case JobIngest:
		return s.Ingest(ctx)
	case JobMorningDigest:
		return s.MorningDigest(ctx)
	case JobEveningDigest:
		return s.EveningDigest(ctx)
	default:
		return JobResult{}, fmt.Errorf("%w: unknown job %q", ErrInvalidInput, job)
	}
}

func (s *JobService) Ingest(ctx context.Context) (JobResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.Ingest")
	defer span.End()

	res, err := s.ingestion.Ingest(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "ingest job failed", "error", err)
		return JobResult{Job: JobIngest}, fmt.Errorf("ingest: %w", err)
	}
	return JobResult{Job: JobIngest, Ingest: &res}, nil
}

// MorningDigest refreshes match data and previews today's fixtures.
func (s *JobService) MorningDigest(ctx context.Context) (JobResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.MorningDigest")
	defer span.End()

	return s.digest(ctx, JobMorningDigest, morningHeader, func(ctx context.Context) (string, error) {
		dc, err := s.digests.DateContext(ctx, s.digests.Today())
		if err != nil {
			return "", err
		}
		return dc.MorningMessage(), nil
	})
}

// EveningDigest refreshes match data and reports today's results.
func (s *JobService) EveningDigest(ctx context.Context) (JobResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobService.EveningDigest")
	defer span.End()

	return s.digest(ctx, JobEveningDigest, eveningHeader, func(ctx context.Context) (string, error) {
		dc, err := s.digests.DateContext(ctx, s.digests.Today())
		if err != nil {
			return "", err
		}
		return dc.EveningMessage(), nil
	})
}

func (s *JobService) digest(ctx context.Context, job JobName, header string, render func(context.Context) (string, error)) (JobResult, error) {
	result := JobResult{Job: job}
	if s.publisher == nil {
		return result, fmt.Errorf("%w: chat publisher is not configured", ErrDependencyUnavailable)
	}

	ingested, err := s.ingestion.IngestMatchData(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "refresh match data failed", "job", job, "error", err)
		return result, fmt.Errorf("refresh match data: %w", err)
	}
	result.Ingest = &ingested

	body, err := render(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "render digest failed", "job", job, "error", err)
		return result, fmt.Errorf("render %s: %w", job, err)
	}

	headerID, err := s.publisher.SendMessage(ctx, header)
	if err != nil {
		return result, fmt.Errorf("send %s header: %w", job, err)
	}
	result.MessageIDs = append(result.MessageIDs, headerID)

	replyID, err := s.publisher.ReplyMessage(ctx, headerID, body)
	if err != nil {
		return result, fmt.Errorf("send %s body: %w", job, err)
	}
	result.MessageIDs = append(result.MessageIDs, replyID)

	s.logger.InfoContext(ctx, "digest posted", "job", job, "fixtures", ingested.Fixtures)
	return result, nil
}
