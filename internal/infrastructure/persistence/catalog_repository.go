package persistence

import (
	"context"

	"github.com/erp/orderhub/internal/domain/catalog"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) live(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("is_deleted = ?", false)
}

// FindByID finds a product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.live(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindByName finds a product by exact name
func (r *GormProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.live(ctx).Where("name = ?", name).Take(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindFirstByNameFold finds the oldest product whose name matches ignoring case
func (r *GormProductRepository) FindFirstByNameFold(ctx context.Context, name string) (*catalog.Product, error) {
	var model models.ProductModel
	err := r.live(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("created_at ASC").Order("id ASC").
		Take(&model).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// ListIDs returns up to limit product IDs
func (r *GormProductRepository) ListIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.live(ctx).Order("created_at ASC").Limit(limit).Pluck("id", &ids).Error
	return ids, err
}

// Create inserts a product
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	var model models.ProductModel
	model.FromDomain(product)
	err := r.db.WithContext(ctx).Create(&model).Error
	return translateDuplicate(err, shared.ErrAlreadyExists)
}

// GormStockRepository implements StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Create inserts a stock row
func (r *GormStockRepository) Create(ctx context.Context, stock *catalog.Stock) error {
	var model models.StockModel
	model.FromDomain(stock)
	return r.db.WithContext(ctx).Create(&model).Error
}

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).Take(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// ListIDs returns up to limit item IDs
func (r *GormItemRepository) ListIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.ItemModel{}).
		Where("is_deleted = ?", false).
		Order("created_at ASC").Limit(limit).Pluck("id", &ids).Error
	return ids, err
}

var (
	_ catalog.ProductRepository = (*GormProductRepository)(nil)
	_ catalog.StockRepository   = (*GormStockRepository)(nil)
	_ catalog.ItemRepository    = (*GormItemRepository)(nil)
)
