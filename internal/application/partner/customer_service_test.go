package partner

import (
	"context"
	"testing"

	appactivity "github.com/erp/orderhub/internal/application/activity"
	"github.com/erp/orderhub/internal/domain/partner"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*partner.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) ListIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func newTestService(repo *MockCustomerRepository) *CustomerService {
	return NewCustomerService(repo, appactivity.NewRecorder(nil, zap.NewNop()), zap.NewNop())
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates active customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		repo.On("Create", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := newTestService(repo).Create(ctx, CreateCustomerRequest{
			Name: "Jon Doe", Email: "jon@doe.ca", Phone: "555",
		})
		require.NoError(t, err)
		assert.Equal(t, "jon@doe.ca", resp.Email)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, "555", resp.Phone)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		repo.On("Create", ctx, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := newTestService(repo).Create(ctx, CreateCustomerRequest{Name: "Jon", Email: "jon@doe.ca"})
		require.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.Equal(t, "Email already exists", err.Error())
	})
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	c, _ := partner.NewCustomer("A", "a@x.io")
	repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 20 && f.OrderBy == "created_at" && f.OrderDir == "desc" &&
			f.Filters["status"] == "inactive"
	})).Return([]partner.Customer{*c}, int64(21), nil)

	items, total, err := newTestService(repo).List(ctx, CustomerListFilter{Page: 2, Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	require.Len(t, items, 1)
	assert.Equal(t, c.ID, items[0].ID)
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only supplied fields", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		c, _ := partner.NewCustomer("Old", "a@x.io")
		c.SetContact("111", "Old Road")
		repo.On("FindByID", ctx, c.ID).Return(c, nil)
		repo.On("Save", ctx, c).Return(nil)

		name, status := "New", "inactive"
		resp, err := newTestService(repo).Update(ctx, c.ID, UpdateCustomerRequest{Name: &name, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "New", resp.Name)
		assert.Equal(t, "111", resp.Phone)
		assert.Equal(t, "Old Road", resp.Address)
		assert.Equal(t, "inactive", resp.Status)
	})

	t.Run("missing customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := newTestService(repo).Update(ctx, id, UpdateCustomerRequest{})
		require.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	id := uuid.New()
	repo.On("SoftDelete", ctx, id).Return(shared.ErrNotFound).Once()
	repo.On("SoftDelete", ctx, id).Return(nil).Once()

	svc := newTestService(repo)
	require.ErrorIs(t, svc.Delete(ctx, id), shared.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, id))
}
