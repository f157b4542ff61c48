package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bptracker/internal/app"
	"bptracker/internal/domain"
)

type mockReadingRepo struct {
	addFn    func(ctx context.Context, userID int64, r domain.NewReading) (*domain.Reading, error)
	getFn    func(ctx context.Context, id, userID int64) (*domain.Reading, error)
	latestFn func(ctx context.Context, userID int64) (*domain.Reading, error)
	listFn   func(ctx context.Context, userID int64, limit int) ([]domain.Reading, error)
	rangeFn  func(ctx context.Context, userID int64, start, end time.Time) ([]domain.Reading, error)
	deleteFn func(ctx context.Context, id, userID int64) (bool, error)
}

func (m *mockReadingRepo) AddReading(ctx context.Context, userID int64, r domain.NewReading) (*domain.Reading, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, r)
	}
	return &domain.Reading{ID: 1, UserID: userID, Systolic: r.Systolic, Diastolic: r.Diastolic,
		Pulse: r.Pulse, Notes: r.Notes, Tags: r.Tags, RecordedAt: r.RecordedAt, CreatedAt: time.Now()}, nil
}

func (m *mockReadingRepo) GetReading(ctx context.Context, id, userID int64) (*domain.Reading, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id, userID)
	}
	return nil, nil
}

func (m *mockReadingRepo) LatestReading(ctx context.Context, userID int64) (*domain.Reading, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockReadingRepo) ListRecentReadings(ctx context.Context, userID int64, limit int) ([]domain.Reading, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockReadingRepo) ListReadingsInRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.Reading, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *mockReadingRepo) DeleteReading(ctx context.Context, id, userID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return false, nil
}

func TestCreate_Success(t *testing.T) {
	var stored domain.NewReading
	repo := &mockReadingRepo{
		addFn: func(_ context.Context, userID int64, r domain.NewReading) (*domain.Reading, error) {
			stored = r
			return &domain.Reading{ID: 7, UserID: userID, Systolic: r.Systolic, Diastolic: r.Diastolic,
				Tags: r.Tags, RecordedAt: r.RecordedAt, CreatedAt: time.Now()}, nil
		},
	}
	svc := app.NewReadingService(repo)

	reading, warnings, err := svc.Create(context.Background(), 1, app.CreateReadingInput{
		Systolic:  122,
		Diastolic: 81,
		Tags:      []string{"morning", "seated", "morning"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.ID != 7 {
		t.Errorf("expected stored reading back, got %+v", reading)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if stored.RecordedAt.IsZero() {
		t.Error("expected RecordedAt to default to now")
	}
	// Tag order and duplicates pass through untouched.
	if len(stored.Tags) != 3 || stored.Tags[0] != "morning" || stored.Tags[1] != "seated" {
		t.Errorf("tags not preserved: %v", stored.Tags)
	}
}

func TestCreate_KeepsCallerRecordedAt(t *testing.T) {
	recorded := time.Date(2026, 8, 20, 7, 30, 0, 0, time.UTC)
	var stored domain.NewReading
	repo := &mockReadingRepo{
		addFn: func(_ context.Context, _ int64, r domain.NewReading) (*domain.Reading, error) {
			stored = r
			return &domain.Reading{ID: 1}, nil
		},
	}
	svc := app.NewReadingService(repo)
	if _, _, err := svc.Create(context.Background(), 1, app.CreateReadingInput{
		Systolic: 120, Diastolic: 80, RecordedAt: recorded,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.RecordedAt.Equal(recorded) {
		t.Errorf("RecordedAt = %v; want %v", stored.RecordedAt, recorded)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	called := false
	repo := &mockReadingRepo{
		addFn: func(_ context.Context, _ int64, _ domain.NewReading) (*domain.Reading, error) {
			called = true
			return nil, nil
		},
	}
	svc := app.NewReadingService(repo)

	_, _, err := svc.Create(context.Background(), 1, app.CreateReadingInput{Systolic: 400, Diastolic: 80})
	var verr *app.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0].Field != "systolic" {
		t.Errorf("unexpected field errors: %v", verr.Fields)
	}
	if called {
		t.Error("repository must not be called on validation failure")
	}
}

func TestCreate_BusinessRuleFailure(t *testing.T) {
	svc := app.NewReadingService(&mockReadingRepo{})
	_, _, err := svc.Create(context.Background(), 1, app.CreateReadingInput{Systolic: 80, Diastolic: 120})
	if !errors.Is(err, domain.ErrSystolicNotAboveDiastolic) {
		t.Fatalf("expected ErrSystolicNotAboveDiastolic, got %v", err)
	}
}

func TestCreate_AdvisoryWarnings(t *testing.T) {
	svc := app.NewReadingService(&mockReadingRepo{})
	reading, warnings, err := svc.Create(context.Background(), 1, app.CreateReadingInput{Systolic: 60, Diastolic: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading == nil {
		t.Fatal("expected reading despite advisory warning")
	}
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", warnings)
	}
}

func TestList_DefaultLimit(t *testing.T) {
	var gotLimit int
	repo := &mockReadingRepo{
		listFn: func(_ context.Context, _ int64, limit int) ([]domain.Reading, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := app.NewReadingService(repo)
	if _, err := svc.List(context.Background(), 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != app.DefaultListLimit {
		t.Errorf("limit = %d; want %d", gotLimit, app.DefaultListLimit)
	}
}

func TestLatest_NotFound(t *testing.T) {
	svc := app.NewReadingService(&mockReadingRepo{})
	_, err := svc.Latest(context.Background(), 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_NotOwned(t *testing.T) {
	repo := &mockReadingRepo{
		deleteFn: func(_ context.Context, _, _ int64) (bool, error) { return false, nil },
	}
	svc := app.NewReadingService(repo)
	if err := svc.Delete(context.Background(), 42, 2); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo := &mockReadingRepo{
		deleteFn: func(_ context.Context, id, userID int64) (bool, error) {
			if id != 42 || userID != 1 {
				t.Errorf("unexpected args id=%d userID=%d", id, userID)
			}
			return true, nil
		},
	}
	svc := app.NewReadingService(repo)
	if err := svc.Delete(context.Background(), 42, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStats_UsesBoundedWindow(t *testing.T) {
	var gotLimit int
	now := time.Now()
	repo := &mockReadingRepo{
		listFn: func(_ context.Context, _ int64, limit int) ([]domain.Reading, error) {
			gotLimit = limit
			return []domain.Reading{
				{Systolic: 130, Diastolic: 85, RecordedAt: now},
				{Systolic: 110, Diastolic: 70, RecordedAt: now.Add(-24 * time.Hour)},
			}, nil
		},
	}
	svc := app.NewReadingService(repo)
	stats, err := svc.Stats(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 100 {
		t.Errorf("stats window = %d; want 100", gotLimit)
	}
	if stats.AverageSystolic != 120 || stats.AverageDiastolic != 78 {
		t.Errorf("averages = %d/%d; want 120/78", stats.AverageSystolic, stats.AverageDiastolic)
	}
}

func TestDistribution_DefaultWindow(t *testing.T) {
	var gotLimit int
	repo := &mockReadingRepo{
		listFn: func(_ context.Context, _ int64, limit int) ([]domain.Reading, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := app.NewReadingService(repo)
	if _, err := svc.Distribution(context.Background(), 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 30 {
		t.Errorf("window = %d; want 30", gotLimit)
	}
}

func TestVisualTrend_PropagatesRepoError(t *testing.T) {
	repoErr := errors.New("boom")
	repo := &mockReadingRepo{
		listFn: func(_ context.Context, _ int64, _ int) ([]domain.Reading, error) {
			return nil, repoErr
		},
	}
	svc := app.NewReadingService(repo)
	if _, err := svc.VisualTrend(context.Background(), 1); !errors.Is(err, repoErr) {
		t.Fatalf("expected repo error, got %v", err)
	}
}
