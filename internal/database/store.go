package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/dualcoach/internal/fitness"
)

// ErrProfileNotFound is returned by mutations that require an existing profile.
var ErrProfileNotFound = errors.New("profile not found")

const (
	defaultProgressLimit = 5
	maxProgressLimit     = 100
)

// Store defines the persistence operations for profiles, progress history and plans.
// Lookups return nil, nil when nothing is stored.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// GetProfile returns the profile for userID, or nil if the user never completed onboarding.
	GetProfile(ctx context.Context, userID int64) (*Profile, error)

	// SaveProfile inserts or fully overwrites a profile and refreshes UpdatedAt.
	SaveProfile(ctx context.Context, profile *Profile) error

	// AppendProgress stores a new progress snapshot timestamped now.
	AppendProgress(ctx context.Context, userID int64, weightKg float64, m fitness.Measurements) (*ProgressRecord, error)

	// ListProgress returns up to limit records, most recent first.
	ListProgress(ctx context.Context, userID int64, limit int) ([]ProgressRecord, error)

	// RecordMeasurements replaces the profile measurements and appends a progress
	// snapshot with the current weight in one transaction.
	RecordMeasurements(ctx context.Context, userID int64, m fitness.Measurements) (*ProgressRecord, error)

	// AppendPlan stores a generated plan of the given kind.
	AppendPlan(ctx context.Context, userID int64, kind PlanKind, content string) (*PlanRecord, error)

	// LatestPlan returns the newest plan of kind, or nil if none exists.
	LatestPlan(ctx context.Context, userID int64, kind PlanKind) (*PlanRecord, error)

	// Purge deletes the profile, its progress and its plans in a single transaction.
	Purge(ctx context.Context, userID int64) error

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error

	// DatabaseSize reports the size of the database file in bytes.
	DatabaseSize(ctx context.Context) (int64, error)
}

type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a Store backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	query := `
        SELECT user_id, username, gender, age, height_cm, weight_kg, measurements,
               fitness_level, goal, location, workouts_per_week, injuries, created_at, updated_at
        FROM profiles
        WHERE user_id = ?;
    `
	if err := s.db.GetContext(ctx, &p, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.ErrorContext(ctx, "Failed to get profile", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get profile for user %d: %w", userID, err)
	}
	return &p, nil
}

func (s *sqlxStore) SaveProfile(ctx context.Context, profile *Profile) error {
	if profile == nil {
		return errors.New("cannot save nil profile")
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	now := s.now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	// A single upsert statement; created_at keeps its first value.
	query := `
        INSERT INTO profiles (user_id, username, gender, age, height_cm, weight_kg, measurements,
                              fitness_level, goal, location, workouts_per_week, injuries, created_at, updated_at)
        VALUES (:user_id, :username, :gender, :age, :height_cm, :weight_kg, :measurements,
                :fitness_level, :goal, :location, :workouts_per_week, :injuries, :created_at, :updated_at)
        ON CONFLICT (user_id) DO UPDATE SET
            username          = excluded.username,
            gender            = excluded.gender,
            age               = excluded.age,
            height_cm         = excluded.height_cm,
            weight_kg         = excluded.weight_kg,
            measurements      = excluded.measurements,
            fitness_level     = excluded.fitness_level,
            goal              = excluded.goal,
            location          = excluded.location,
            workouts_per_week = excluded.workouts_per_week,
            injuries          = excluded.injuries,
            updated_at        = excluded.updated_at;
    `
	if _, err := s.db.NamedExecContext(ctx, query, profile); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save profile", "user_id", profile.UserID, "error", err)
		return fmt.Errorf("failed to save profile for user %d: %w", profile.UserID, err)
	}

	s.logger.DebugContext(ctx, "Profile saved", "user_id", profile.UserID)
	return nil
}

func (s *sqlxStore) AppendProgress(ctx context.Context, userID int64, weightKg float64, m fitness.Measurements) (*ProgressRecord, error) {
	rec := &ProgressRecord{UserID: userID, WeightKg: weightKg, Measurements: m, RecordedAt: s.now()}
	if err := insertProgress(ctx, s.db, rec); err != nil {
		s.logger.ErrorContext(ctx, "Failed to append progress", "user_id", userID, "error", err)
		return nil, err
	}
	return rec, nil
}

func (s *sqlxStore) ListProgress(ctx context.Context, userID int64, limit int) ([]ProgressRecord, error) {
	if limit <= 0 {
		limit = defaultProgressLimit
	} else if limit > maxProgressLimit {
		limit = maxProgressLimit
	}

	records := []ProgressRecord{}
	query := `
        SELECT id, user_id, weight_kg, measurements, recorded_at
        FROM progress
        WHERE user_id = ?
        ORDER BY recorded_at DESC, id DESC
        LIMIT ?;
    `
	if err := s.db.SelectContext(ctx, &records, query, userID, limit); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list progress", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list progress for user %d: %w", userID, err)
	}
	return records, nil
}

func (s *sqlxStore) RecordMeasurements(ctx context.Context, userID int64, m fitness.Measurements) (*ProgressRecord, error) {
	var rec *ProgressRecord
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var weight float64
		err := tx.GetContext(ctx, &weight, `SELECT weight_kg FROM profiles WHERE user_id = ?;`, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProfileNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read current weight: %w", err)
		}

		now := s.now()
		if _, err := tx.ExecContext(ctx,
			`UPDATE profiles SET measurements = ?, updated_at = ? WHERE user_id = ?;`,
			m, now, userID); err != nil {
			return fmt.Errorf("failed to update measurements: %w", err)
		}

		rec = &ProgressRecord{UserID: userID, WeightKg: weight, Measurements: m, RecordedAt: now}
		return insertProgress(ctx, tx, rec)
	})
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			s.logger.ErrorContext(ctx, "Failed to record measurements", "user_id", userID, "error", err)
		}
		return nil, err
	}

	s.logger.DebugContext(ctx, "Measurements recorded", "user_id", userID, "progress_id", rec.ID)
	return rec, nil
}

func (s *sqlxStore) AppendPlan(ctx context.Context, userID int64, kind PlanKind, content string) (*PlanRecord, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown plan kind %q", kind)
	}

	rec := &PlanRecord{UserID: userID, Kind: kind, Content: content, CreatedAt: s.now()}
	res, err := s.db.NamedExecContext(ctx, `
        INSERT INTO plans (user_id, kind, content, created_at)
        VALUES (:user_id, :kind, :content, :created_at);
    `, rec)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to append plan", "user_id", userID, "kind", kind, "error", err)
		return nil, fmt.Errorf("failed to append %s plan for user %d: %w", kind, userID, err)
	}
	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}
	return rec, nil
}

func (s *sqlxStore) LatestPlan(ctx context.Context, userID int64, kind PlanKind) (*PlanRecord, error) {
	var rec PlanRecord
	query := `
        SELECT id, user_id, kind, content, created_at
        FROM plans
        WHERE user_id = ? AND kind = ?
        ORDER BY created_at DESC, id DESC
        LIMIT 1;
    `
	if err := s.db.GetContext(ctx, &rec, query, userID, kind); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.ErrorContext(ctx, "Failed to get latest plan", "user_id", userID, "kind", kind, "error", err)
		return nil, fmt.Errorf("failed to get latest %s plan for user %d: %w", kind, userID, err)
	}
	return &rec, nil
}

func (s *sqlxStore) Purge(ctx context.Context, userID int64) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		// Children first so the purge does not depend on cascading deletes.
		for _, q := range []string{
			`DELETE FROM plans WHERE user_id = ?;`,
			`DELETE FROM progress WHERE user_id = ?;`,
			`DELETE FROM profiles WHERE user_id = ?;`,
		} {
			if _, err := tx.ExecContext(ctx, q, userID); err != nil {
				return fmt.Errorf("failed to execute %q: %w", q, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to purge user data", "user_id", userID, "error", err)
		return fmt.Errorf("failed to purge user %d: %w", userID, err)
	}

	s.logger.InfoContext(ctx, "User data purged", "user_id", userID)
	return nil
}

func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Running SQL maintenance (VACUUM)")
	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "Failed to run VACUUM", "error", err)
		return fmt.Errorf("failed to run VACUUM: %w", err)
	}
	return nil
}

func (s *sqlxStore) DatabaseSize(ctx context.Context) (int64, error) {
	var size int64
	err := s.db.GetContext(ctx, &size,
		"SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size();")
	if err != nil {
		return 0, fmt.Errorf("failed to read database size: %w", err)
	}
	return size, nil
}

// withTx runs fn in a transaction, committing on success and rolling back otherwise.
func (s *sqlxStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil
	return nil
}

// insertProgress inserts rec and sets its ID.
func insertProgress(ctx context.Context, ext sqlx.ExtContext, rec *ProgressRecord) error {
	query, args, err := ext.BindNamed(`
        INSERT INTO progress (user_id, weight_kg, measurements, recorded_at)
        VALUES (:user_id, :weight_kg, :measurements, :recorded_at);
    `, rec)
	if err != nil {
		return fmt.Errorf("failed to bind progress insert: %w", err)
	}
	res, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert progress for user %d: %w", rec.UserID, err)
	}
	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}
