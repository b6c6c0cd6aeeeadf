package persistence

import (
	"context"
	"time"

	"github.com/erp/orderhub/internal/domain/identity"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) live(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.UserModel{}).Where("is_deleted = ?", false)
}

// FindByID finds a user by its ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.live(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.live(ctx).Where("email = ?", email).Take(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of users and the total count
func (r *GormUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]identity.User, int64, error) {
	query := r.live(ctx)
	if filter.RoleID != nil {
		query = query.Where("role_id = ?", *filter.RoleID)
	}
	if filter.FactoryID != nil {
		query = query.Where("factory_id = ?", *filter.FactoryID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.UserModel
	if err := paginate(query, filter.Filter, UserSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	users := make([]identity.User, len(rows))
	for i := range rows {
		users[i] = *rows[i].ToDomain()
	}
	return users, total, nil
}

// Create inserts a user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	var model models.UserModel
	model.FromDomain(user)
	err := r.db.WithContext(ctx).Create(&model).Error
	return translateDuplicate(err, shared.ErrAlreadyExists)
}

// Save updates the mutable user columns
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	result := r.live(ctx).Where("id = ?", user.ID).Updates(map[string]any{
		"name":          user.Name,
		"password_hash": user.PasswordHash,
		"role_id":       user.RoleID,
		"factory_id":    user.FactoryID,
		"status":        user.Status,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SoftDelete flags the user as deleted
func (r *GormUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.live(ctx).Where("id = ?", id).Updates(map[string]any{
		"is_deleted": true,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormRoleRepository implements RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByID finds a role by its ID
func (r *GormRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// PermissionsForRole returns the permissions granted to a role, by name
func (r *GormRoleRepository) PermissionsForRole(ctx context.Context, roleID uuid.UUID) ([]identity.Permission, error) {
	var rows []models.PermissionModel
	err := r.db.WithContext(ctx).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Order("permissions.name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	perms := make([]identity.Permission, len(rows))
	for i := range rows {
		perms[i] = *rows[i].ToDomain()
	}
	return perms, nil
}

// GormOrganizationRepository implements OrganizationRepository using GORM
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewGormOrganizationRepository creates a new GormOrganizationRepository
func NewGormOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// FactoryExists reports whether a live factory has the given ID
func (r *GormOrganizationRepository) FactoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FactoryModel{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	return count > 0, err
}

// ListFactoryIDs returns up to limit factory IDs
func (r *GormOrganizationRepository) ListFactoryIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.FactoryModel{}).
		Where("is_deleted = ?", false).Limit(limit).Pluck("id", &ids).Error
	return ids, err
}

// ListCompanyIDs returns up to limit company IDs
func (r *GormOrganizationRepository) ListCompanyIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.CompanyModel{}).
		Where("is_deleted = ?", false).Limit(limit).Pluck("id", &ids).Error
	return ids, err
}

var (
	_ identity.UserRepository         = (*GormUserRepository)(nil)
	_ identity.RoleRepository         = (*GormRoleRepository)(nil)
	_ identity.OrganizationRepository = (*GormOrganizationRepository)(nil)
)
