// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

// Package storage persists user accounts and item ratings in SQLite.
// It backs the recommendation engine's training data feed and the
// account endpoints of the API.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/vitalis-app/vitalis/internal/lifestyle"
	"github.com/vitalis-app/vitalis/internal/recommend"
)

// Sentinel errors for storage operations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername indicates a username collision on create.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidRating indicates a rating score outside [0, 5].
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
)

// User is a stored account with its lifestyle profile.
type User struct {
	ID        int                   `json:"id"`
	Username  string                `json:"username"`
	Profile   lifestyle.UserProfile `json:"profile"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// Store wraps the SQLite connection.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// New opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral store.
func New(path string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, logger: logger.With().Str("component", "storage").Logger()}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		age INTEGER NOT NULL DEFAULT 0,
		height_cm REAL NOT NULL DEFAULT 0,
		weight_kg REAL NOT NULL DEFAULT 0,
		gender TEXT NOT NULL DEFAULT 'F',
		current_activity TEXT NOT NULL DEFAULT 'sedentary',
		goal_activity TEXT NOT NULL DEFAULT 'sedentary',
		weight_goal TEXT NOT NULL DEFAULT 'maintain',
		current_daily_calories REAL NOT NULL DEFAULT 0,
		goal_daily_calories REAL NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ratings (
		user_id INTEGER NOT NULL,
		item_id INTEGER NOT NULL,
		score INTEGER NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (user_id, item_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_ratings_user ON ratings(user_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// CreateUser inserts a new account and returns it with the assigned ID.
func (s *Store) CreateUser(ctx context.Context, username string, profile lifestyle.UserProfile) (*User, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			username, age, height_cm, weight_kg, gender,
			current_activity, goal_activity, weight_goal,
			current_daily_calories, goal_daily_calories,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		username, profile.Age, profile.HeightCM, profile.WeightKG,
		profile.Gender.String(), profile.CurrentActivity.String(),
		profile.GoalActivity.String(), profile.WeightGoal.String(),
		profile.CurrentDailyCalories, profile.GoalDailyCalories,
		now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUsername, username)
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading insert id: %w", err)
	}
	s.logger.Info().Int64("user_id", id).Str("username", username).Msg("User created")
	return &User{ID: int(id), Username: username, Profile: profile, CreatedAt: now, UpdatedAt: now}, nil
}

// GetUser fetches an account by ID.
func (s *Store) GetUser(ctx context.Context, id int) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, userSelect+` WHERE id = ?`, id))
}

// GetUserByUsername fetches an account by its unique username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, userSelect+` WHERE username = ?`, username))
}

// UpdateUser replaces the profile fields of an existing account.
func (s *Store) UpdateUser(ctx context.Context, id int, profile lifestyle.UserProfile) (*User, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			age = ?, height_cm = ?, weight_kg = ?, gender = ?,
			current_activity = ?, goal_activity = ?, weight_goal = ?,
			current_daily_calories = ?, goal_daily_calories = ?,
			updated_at = ?
		WHERE id = ?`,
		profile.Age, profile.HeightCM, profile.WeightKG, profile.Gender.String(),
		profile.CurrentActivity.String(), profile.GoalActivity.String(),
		profile.WeightGoal.String(), profile.CurrentDailyCalories,
		profile.GoalDailyCalories, now, id)
	if err != nil {
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes an account and its ratings.
func (s *Store) DeleteUser(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM ratings WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("deleting ratings for user %d: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return tx.Commit()
}

// ListUsers returns all accounts ordered by ID.
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, userSelect+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := s.scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpsertRating records a user's score for an item, replacing any prior
// score for the same pair. Scores are integers in [0, 5].
func (s *Store) UpsertRating(ctx context.Context, r recommend.Rating) error {
	if r.Score < 0 || r.Score > 5 {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, r.Score)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ratings (user_id, item_id, score, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, item_id) DO UPDATE SET
			score = excluded.score,
			updated_at = excluded.updated_at`,
		r.UserID, r.ItemID, r.Score, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upserting rating: %w", err)
	}
	return nil
}

// RatingCount returns the number of items a user has rated.
func (s *Store) RatingCount(ctx context.Context, userID int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ratings WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting ratings for user %d: %w", userID, err)
	}
	return n, nil
}

// GetRatings returns every stored rating. Implements recommend.DataProvider
// for model training.
func (s *Store) GetRatings(ctx context.Context) ([]recommend.Rating, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, item_id, score FROM ratings ORDER BY user_id, item_id`)
	if err != nil {
		return nil, fmt.Errorf("querying ratings: %w", err)
	}
	defer rows.Close()

	var ratings []recommend.Rating
	for rows.Next() {
		var r recommend.Rating
		if err := rows.Scan(&r.UserID, &r.ItemID, &r.Score); err != nil {
			return nil, fmt.Errorf("scanning rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

var _ recommend.DataProvider = (*Store)(nil)

const userSelect = `
	SELECT id, username, age, height_cm, weight_kg, gender,
	       current_activity, goal_activity, weight_goal,
	       current_daily_calories, goal_daily_calories,
	       created_at, updated_at
	FROM users`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanUser(row rowScanner) (*User, error) {
	u, err := s.scanUserRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *Store) scanUserRow(row rowScanner) (*User, error) {
	var (
		u                               User
		gender, curAct, goalAct, wtGoal string
	)
	err := row.Scan(&u.ID, &u.Username,
		&u.Profile.Age, &u.Profile.HeightCM, &u.Profile.WeightKG, &gender,
		&curAct, &goalAct, &wtGoal,
		&u.Profile.CurrentDailyCalories, &u.Profile.GoalDailyCalories,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if u.Profile.Gender, err = lifestyle.ParseGender(gender); err != nil {
		return nil, fmt.Errorf("user %d: %w", u.ID, err)
	}
	if u.Profile.CurrentActivity, err = lifestyle.ParseActivityLevel(curAct); err != nil {
		return nil, fmt.Errorf("user %d: %w", u.ID, err)
	}
	if u.Profile.GoalActivity, err = lifestyle.ParseActivityLevel(goalAct); err != nil {
		return nil, fmt.Errorf("user %d: %w", u.ID, err)
	}
	if u.Profile.WeightGoal, err = lifestyle.ParseWeightGoal(wtGoal); err != nil {
		return nil, fmt.Errorf("user %d: %w", u.ID, err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	// modernc sqlite reports constraint failures via the error string;
	// it does not export a typed error for them.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
