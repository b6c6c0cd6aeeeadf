package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/orderhub/internal/domain/activity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Append(ctx context.Context, entry *activity.Log) error {
	return m.Called(ctx, entry).Error(0)
}

func TestRecorder_Record(t *testing.T) {
	actor := activity.Actor{UserID: "u-1", UserName: "Ada", Email: "ada@x.io"}

	t.Run("appends entry for the actor", func(t *testing.T) {
		repo := new(MockActivityRepository)
		ctx := activity.WithActor(context.Background(), actor)
		repo.On("Append", ctx, mock.MatchedBy(func(e *activity.Log) bool {
			return e.ModuleName == "Orders" && e.RecordID == "42" && e.PerformedBy == actor
		})).Return(nil)

		NewRecorder(repo, zap.NewNop()).Record(ctx, "Orders", "42", "Created order #42")
		repo.AssertExpectations(t)
	})

	t.Run("skips anonymous calls", func(t *testing.T) {
		repo := new(MockActivityRepository)
		NewRecorder(repo, zap.NewNop()).Record(context.Background(), "Orders", "42", "Created")
		repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("warns on failure", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		repo := new(MockActivityRepository)
		repo.On("Append", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

		ctx := activity.WithActor(context.Background(), actor)
		NewRecorder(repo, zap.New(core)).Record(ctx, "Customers", "c-1", "Deleted customer")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "Failed to record activity", logs.All()[0].Message)
	})

	t.Run("nil recorder is a no-op", func(t *testing.T) {
		var r *Recorder
		assert.NotPanics(t, func() { r.Record(context.Background(), "Orders", "1", "x") })
	})
}
