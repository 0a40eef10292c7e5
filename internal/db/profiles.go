package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, user_id, district, specialization, languages, free_time_slots, lat, lon, created_at`

func scanProfile(row pgx.Row) (*PlumberProfile, error) {
	var p PlumberProfile
	var district, specialization, languages, slots *string
	err := row.Scan(&p.ID, &p.UserID, &district, &specialization, &languages, &slots, &p.Lat, &p.Lon, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan plumber profile: %w", err)
	}
	if district != nil {
		p.District = *district
	}
	if specialization != nil {
		p.Specialization = *specialization
	}
	if languages != nil {
		p.Languages = *languages
	}
	if slots != nil {
		p.FreeTimeSlots = *slots
	}
	return &p, nil
}

// CreatePlumberProfile inserts a profile for a plumber account and returns its ID
func (db *DB) CreatePlumberProfile(ctx context.Context, p *PlumberProfile) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO plumber_profiles (user_id, district, specialization, languages, free_time_slots, lat, lon)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		p.UserID, p.District, p.Specialization, p.Languages, p.FreeTimeSlots, p.Lat, p.Lon,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create plumber profile: %w", err)
	}
	return id, nil
}

// GetPlumberProfile retrieves a profile by its ID. Returns nil when not found.
func (db *DB) GetPlumberProfile(ctx context.Context, profileID uuid.UUID) (*PlumberProfile, error) {
	return scanProfile(db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM plumber_profiles WHERE id = $1`, profileID))
}

// GetPlumberProfileByUser retrieves the profile owned by a user account.
// Returns nil when the user has no profile.
func (db *DB) GetPlumberProfileByUser(ctx context.Context, userID uuid.UUID) (*PlumberProfile, error) {
	return scanProfile(db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM plumber_profiles WHERE user_id = $1`, userID))
}

// ListPlumberProfiles retrieves every registered plumber profile
func (db *DB) ListPlumberProfiles(ctx context.Context) ([]PlumberProfile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM plumber_profiles ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plumber profiles: %w", err)
	}
	defer rows.Close()

	var profiles []PlumberProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

// UpdatePlumberProfile replaces the mutable fields of a profile
func (db *DB) UpdatePlumberProfile(ctx context.Context, p *PlumberProfile) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE plumber_profiles
		 SET district = $1, specialization = $2, languages = $3, free_time_slots = $4, lat = $5, lon = $6
		 WHERE id = $7`,
		p.District, p.Specialization, p.Languages, p.FreeTimeSlots, p.Lat, p.Lon, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update plumber profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("plumber profile not found: %s", p.ID)
	}
	return nil
}
