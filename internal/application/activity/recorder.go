package activity

import (
	"context"

	"github.com/erp/orderhub/internal/domain/activity"
	"go.uber.org/zap"
)

// Recorder appends activity entries on behalf of the authenticated actor.
// Calls without an actor are ignored, and a failed write never fails the
// operation that triggered it.
type Recorder struct {
	repo   activity.Repository
	logger *zap.Logger
}

// NewRecorder creates a new Recorder
func NewRecorder(repo activity.Repository, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record logs change against the record in module
func (r *Recorder) Record(ctx context.Context, module, recordID, change string) {
	if r == nil || r.repo == nil {
		return
	}
	actor, ok := activity.ActorFromContext(ctx)
	if !ok {
		return
	}
	if err := r.repo.Append(ctx, activity.NewLog(module, recordID, change, actor)); err != nil {
		r.logger.Warn("Failed to record activity",
			zap.String("module", module),
			zap.String("record_id", recordID),
			zap.Error(err))
	}
}
