package store

import (
	"encoding/json"
	"log"

	"referral-platform/internal/models"
)

const activityColumns = `id, user_id, type, title, description, entity_type, entity_id, metadata, created_at`

// ListActivities returns the newest feed entries visible under the scope.
func (s *Store) ListActivities(scope Scope, limit int) ([]models.Activity, error) {
	if !s.hasActivities {
		return nil, ErrNotAvailable
	}
	if limit <= 0 {
		limit = 20
	}

	activities := []models.Activity{}
	var err error
	if scope.All {
		err = s.DB.Select(&activities,
			`SELECT `+activityColumns+` FROM activities ORDER BY created_at DESC LIMIT $1`, limit)
	} else {
		userID := scope.Referrer
		if userID == "" {
			userID = scope.Business
		}
		err = s.DB.Select(&activities,
			`SELECT `+activityColumns+` FROM activities WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
			userID, limit)
	}
	return activities, err
}

// RecordActivity appends a feed entry. A no-op when the table is absent, so
// callers never have to care whether the deployment carries the feed.
func (s *Store) RecordActivity(userID, activityType, title, description, entityType, entityID string, metadata map[string]interface{}) {
	if !s.hasActivities {
		return
	}

	var meta json.RawMessage
	if metadata != nil {
		meta, _ = json.Marshal(metadata)
	}

	_, err := s.DB.Exec(`
		INSERT INTO activities (user_id, type, title, description, entity_type, entity_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, activityType, title, description, entityType, entityID, meta)
	if err != nil {
		log.Println("Failed to record activity:", err)
	}
}
