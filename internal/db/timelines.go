package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SavedTimeline is a named snapshot of a generated timeline with the
// profile that produced it.
type SavedTimeline struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	UserInput        json.RawMessage `json:"user_input"`
	TimelineResponse json.RawMessage `json:"timeline_response"`
	CreatedAt        time.Time       `json:"created_at"`
}

// SaveTimeline stores a timeline snapshot for a user and returns its ID.
func (db *DB) SaveTimeline(ctx context.Context, userID uuid.UUID, userInput, response json.RawMessage) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO saved_timelines (user_id, user_input, timeline_response)
		 VALUES ($1, $2, $3) RETURNING id`,
		userID, []byte(userInput), []byte(response),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save timeline: %w", err)
	}
	return id, nil
}

// ListTimelines retrieves a user's saved timelines, newest first.
func (db *DB) ListTimelines(ctx context.Context, userID uuid.UUID) ([]SavedTimeline, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, user_input, timeline_response, created_at
		 FROM saved_timelines WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list timelines: %w", err)
	}
	defer rows.Close()

	var timelines []SavedTimeline
	for rows.Next() {
		var t SavedTimeline
		if err := rows.Scan(&t.ID, &t.UserID, &t.UserInput, &t.TimelineResponse, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timeline: %w", err)
		}
		timelines = append(timelines, t)
	}
	return timelines, rows.Err()
}

// DeleteTimeline removes one saved timeline. Scoped to the owner so a user
// cannot delete another account's snapshots.
func (db *DB) DeleteTimeline(ctx context.Context, userID, timelineID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM saved_timelines WHERE id = $1 AND user_id = $2`,
		timelineID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete timeline: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("timeline not found: %s", timelineID)
	}
	return nil
}
