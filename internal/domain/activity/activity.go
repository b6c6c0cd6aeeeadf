package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Actor identifies who performed a change
type Actor struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

// Log is one entry of the activity trail
type Log struct {
	ID          uuid.UUID
	ModuleName  string
	RecordID    string
	ChangeLog   string
	PerformedBy Actor
	CreatedAt   time.Time
}

// NewLog creates an activity entry
func NewLog(module, recordID, change string, actor Actor) *Log {
	return &Log{
		ID:          uuid.New(),
		ModuleName:  module,
		RecordID:    recordID,
		ChangeLog:   change,
		PerformedBy: actor,
		CreatedAt:   time.Now(),
	}
}

// Repository appends activity entries
type Repository interface {
	Append(ctx context.Context, entry *Log) error
}

type actorKey struct{}

// WithActor returns a context carrying the acting user
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the acting user, if any
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok && actor.UserID != ""
}
