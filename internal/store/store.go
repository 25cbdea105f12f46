package store

import (
	"errors"
	"log"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrNotFound reports a missing row.
	ErrNotFound = errors.New("not found")
	// ErrNotAvailable reports a resource whose backing table is absent in
	// this deployment. Endpoints degrade instead of crashing.
	ErrNotAvailable = errors.New("backing table not available")
	// ErrAlreadyResolved reports a second resolution attempt on a dispute.
	ErrAlreadyResolved = errors.New("dispute already resolved")
	// ErrInsufficientBalance reports a withdrawal above the available balance.
	ErrInsufficientBalance = errors.New("insufficient available balance")
)

// Store is the direct-Postgres data layer behind the passthrough API. It
// runs with the service role; visibility is enforced by Scope arguments, not
// row-level policies.
type Store struct {
	DB *sqlx.DB

	hasDisputes   bool
	hasActivities bool
}

func New(db *sqlx.DB) *Store {
	s := &Store{
		DB:            db,
		hasDisputes:   tableExists(db, "disputes"),
		hasActivities: tableExists(db, "activities"),
	}
	if !s.hasDisputes {
		log.Println("disputes table not present, dispute endpoints will degrade")
	}
	if !s.hasActivities {
		log.Println("activities table not present, activity feed disabled")
	}
	return s
}

func tableExists(db *sqlx.DB, name string) bool {
	var exists bool
	err := db.Get(&exists,
		`SELECT EXISTS (SELECT FROM pg_tables WHERE schemaname = 'public' AND tablename = $1)`,
		name)
	if err != nil {
		log.Println("Failed to probe table", name, ":", err)
		return false
	}
	return exists
}

// HasDisputes reports whether the disputes table exists in this deployment.
func (s *Store) HasDisputes() bool { return s.hasDisputes }

// HasActivities reports whether the activities table exists.
func (s *Store) HasActivities() bool { return s.hasActivities }
