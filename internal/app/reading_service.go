// Package app holds the application services and business logic.
package app

import (
	"context"
	"time"

	"bptracker/internal/domain"
)

const (
	// DefaultListLimit bounds list requests that do not name a limit.
	DefaultListLimit = 50
	// statsWindow is how many recent readings feed the stats snapshot.
	statsWindow = 100
	// chartWindow is how many recent readings feed the distribution and the
	// visualization trend.
	chartWindow = 30
)

// ValidationError carries the per-field schema failures of a rejected reading
// so the transport layer can return structured details.
type ValidationError struct {
	Fields []domain.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// CreateReadingInput is the caller-supplied shape of a new reading.
type CreateReadingInput struct {
	Systolic   int
	Diastolic  int
	Pulse      *int
	Notes      string
	Tags       []string
	RecordedAt time.Time
}

// ReadingService encapsulates the blood-pressure reading use cases. Every
// method takes the owning user's ID explicitly; there is no ambient identity.
type ReadingService struct {
	repo domain.ReadingRepository
}

// NewReadingService creates a ReadingService backed by the given repository.
func NewReadingService(repo domain.ReadingRepository) *ReadingService {
	return &ReadingService{repo: repo}
}

// Create validates and stores a new reading. RecordedAt defaults to the
// current time when unset. The returned warnings are advisory plausibility
// notes; they never block the write.
func (s *ReadingService) Create(ctx context.Context, userID int64, in CreateReadingInput) (*domain.Reading, []string, error) {
	res := domain.ValidateReading(in.Systolic, in.Diastolic, in.Pulse, in.Notes)
	if len(res.FieldErrors) > 0 {
		return nil, nil, &ValidationError{Fields: res.FieldErrors}
	}
	if res.RuleError != nil {
		return nil, nil, res.RuleError
	}

	recordedAt := in.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	reading, err := s.repo.AddReading(ctx, userID, domain.NewReading{
		Systolic:   in.Systolic,
		Diastolic:  in.Diastolic,
		Pulse:      in.Pulse,
		Notes:      in.Notes,
		Tags:       in.Tags,
		RecordedAt: recordedAt,
	})
	if err != nil {
		return nil, nil, err
	}
	return reading, res.Warnings, nil
}

// List returns the most recent readings up to limit, newest first.
func (s *ReadingService) List(ctx context.Context, userID int64, limit int) ([]domain.Reading, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.repo.ListRecentReadings(ctx, userID, limit)
}

// Latest returns the most recent reading, or ErrNotFound when none exist.
func (s *ReadingService) Latest(ctx context.Context, userID int64) (*domain.Reading, error) {
	reading, err := s.repo.LatestReading(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reading == nil {
		return nil, domain.ErrNotFound
	}
	return reading, nil
}

// Range returns the readings recorded within [start, end], newest first.
func (s *ReadingService) Range(ctx context.Context, userID int64, start, end time.Time) ([]domain.Reading, error) {
	return s.repo.ListReadingsInRange(ctx, userID, start, end)
}

// Delete removes a reading owned by the given user. Deleting a reading that
// is absent or owned by someone else returns ErrNotFound.
func (s *ReadingService) Delete(ctx context.Context, id, userID int64) error {
	deleted, err := s.repo.DeleteReading(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// Stats derives the aggregate snapshot from the most recent readings.
func (s *ReadingService) Stats(ctx context.Context, userID int64) (domain.Stats, error) {
	readings, err := s.repo.ListRecentReadings(ctx, userID, statsWindow)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.ComputeStats(readings, time.Now()), nil
}

// Distribution returns per-category counts over the most recent window
// readings. A non-positive window falls back to the default chart window.
func (s *ReadingService) Distribution(ctx context.Context, userID int64, window int) ([]domain.CategoryCount, error) {
	if window <= 0 {
		window = chartWindow
	}
	readings, err := s.repo.ListRecentReadings(ctx, userID, window)
	if err != nil {
		return nil, err
	}
	return domain.CategoryDistribution(readings), nil
}

// VisualTrend returns the charting surface's trend direction over the most
// recent readings.
func (s *ReadingService) VisualTrend(ctx context.Context, userID int64) (domain.Trend, error) {
	readings, err := s.repo.ListRecentReadings(ctx, userID, chartWindow)
	if err != nil {
		return "", err
	}
	return domain.ChartTrend(readings), nil
}
