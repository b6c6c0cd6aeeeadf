package identity

import (
	"context"
	"errors"

	appactivity "github.com/erp/orderhub/internal/application/activity"
	"github.com/erp/orderhub/internal/domain/identity"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const activityModule = "Users"

// ErrEmailExists is returned when another user already uses the email
var ErrEmailExists = shared.NewDomainError("ALREADY_EXISTS", "Email already exists")

// UserService handles user management operations
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	orgRepo  identity.OrganizationRepository
	hasher   *PasswordHasher
	activity *appactivity.Recorder
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	orgRepo identity.OrganizationRepository,
	hasher *PasswordHasher,
	activity *appactivity.Recorder,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		orgRepo:  orgRepo,
		hasher:   hasher,
		activity: activity,
		logger:   logger,
	}
}

// Create creates a new user with a hashed password
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(req.Name, req.Email, hash)
	if err != nil {
		return nil, err
	}
	if req.RoleID != nil {
		if err := s.ensureRole(ctx, *req.RoleID); err != nil {
			return nil, err
		}
		user.AssignRole(*req.RoleID)
	}
	if req.FactoryID != nil {
		if err := s.ensureFactory(ctx, *req.FactoryID); err != nil {
			return nil, err
		}
		user.AssignFactory(*req.FactoryID)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.activity.Record(ctx, activityModule, user.ID.String(), "Created user "+user.Email)
	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List retrieves users, optionally narrowed by role or factory
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	f := identity.UserFilter{
		Filter:    shared.DefaultFilter(),
		RoleID:    filter.RoleID,
		FactoryID: filter.FactoryID,
	}
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}

	users, total, err := s.userRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return ToUserResponses(users), total, nil
}

// Update updates name, status and optionally the password
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var name string
	var status identity.UserStatus
	if req.Name != nil {
		name = *req.Name
	}
	if req.Status != nil {
		status = identity.UserStatus(*req.Status)
	}
	if err := user.Update(name, status); err != nil {
		return nil, err
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.SetPasswordHash(hash)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, activityModule, user.ID.String(), "Updated user "+user.Email)
	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete soft-deletes a user
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, activityModule, id.String(), "Deleted user")
	return nil
}

// AssignRole sets the role of a user
func (s *UserService) AssignRole(ctx context.Context, id, roleID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureRole(ctx, roleID); err != nil {
		return nil, err
	}
	user.AssignRole(roleID)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, activityModule, user.ID.String(), "Assigned role "+roleID.String())
	resp := ToUserResponse(user)
	return &resp, nil
}

// AssignFactory sets the factory of a user
func (s *UserService) AssignFactory(ctx context.Context, id, factoryID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFactory(ctx, factoryID); err != nil {
		return nil, err
	}
	user.AssignFactory(factoryID)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, activityModule, user.ID.String(), "Assigned factory "+factoryID.String())
	resp := ToUserResponse(user)
	return &resp, nil
}

// Permissions lists the permissions a user holds through their role. A user
// without a role holds none.
func (s *UserService) Permissions(ctx context.Context, id uuid.UUID) ([]PermissionResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.RoleID == nil {
		return []PermissionResponse{}, nil
	}

	perms, err := s.roleRepo.PermissionsForRole(ctx, *user.RoleID)
	if err != nil {
		return nil, err
	}
	out := make([]PermissionResponse, len(perms))
	for i, p := range perms {
		out[i] = PermissionResponse{ID: p.ID, Name: p.Name, Description: p.Description}
	}
	return out, nil
}

func (s *UserService) ensureRole(ctx context.Context, roleID uuid.UUID) error {
	if _, err := s.roleRepo.FindByID(ctx, roleID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Role not found")
		}
		return err
	}
	return nil
}

func (s *UserService) ensureFactory(ctx context.Context, factoryID uuid.UUID) error {
	ok, err := s.orgRepo.FactoryExists(ctx, factoryID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError("NOT_FOUND", "Factory not found")
	}
	return nil
}
