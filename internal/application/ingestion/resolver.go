package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erp/orderhub/internal/domain/catalog"
	"github.com/erp/orderhub/internal/domain/partner"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CustomerDraft is the loosely structured customer data found in an incoming order
type CustomerDraft struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Status  partner.CustomerStatus
}

// ResolverConfig configures the Resolver
type ResolverConfig struct {
	// Concurrency bounds how many line-item titles resolve at once
	Concurrency int
}

// Resolver finds or creates the customers and products an order refers to.
// Lookups and inserts race with other requests; the unique indexes decide
// the winner and the loser re-reads.
type Resolver struct {
	customers partner.CustomerRepository
	products  catalog.ProductRepository
	stock     catalog.StockRepository
	config    ResolverConfig
	logger    *zap.Logger
}

// NewResolver creates a new Resolver
func NewResolver(
	customers partner.CustomerRepository,
	products catalog.ProductRepository,
	stock catalog.StockRepository,
	config ResolverConfig,
	logger *zap.Logger,
) *Resolver {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Resolver{
		customers: customers,
		products:  products,
		stock:     stock,
		config:    config,
		logger:    logger,
	}
}

// ResolveCustomer returns the live customer with the draft's exact email,
// creating it when none exists. An existing customer is never modified.
func (r *Resolver) ResolveCustomer(ctx context.Context, draft CustomerDraft) (*partner.Customer, error) {
	existing, err := r.customers.FindByEmail(ctx, draft.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("lookup customer: %w", err)
	}

	customer, err := partner.NewCustomer(draft.Name, draft.Email)
	if err != nil {
		return nil, err
	}
	customer.SetContact(draft.Phone, draft.Address)
	if err := customer.SetStatus(draft.Status); err != nil {
		return nil, err
	}

	err = r.customers.Create(ctx, customer)
	if errors.Is(err, shared.ErrAlreadyExists) {
		r.logger.Debug("Customer created concurrently, re-reading", zap.String("email", draft.Email))
		return r.customers.FindByEmail(ctx, draft.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	r.logger.Info("Customer created", zap.String("customer_id", customer.ID.String()))
	return customer, nil
}

// ResolveProduct returns the ID of the product named title. An exact match
// wins over a case-insensitive one; among case-insensitive matches the oldest
// wins. The exact lookup uses title as given; the case-insensitive lookup and
// the placeholder use it trimmed. An unseen title creates a placeholder
// product with an empty stock row.
func (r *Resolver) ResolveProduct(ctx context.Context, title string) (uuid.UUID, error) {
	if p, err := r.products.FindByName(ctx, title); err == nil {
		return p.ID, nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, fmt.Errorf("lookup product %q: %w", title, err)
	}

	title = strings.TrimSpace(title)
	if p, err := r.products.FindFirstByNameFold(ctx, title); err == nil {
		return p.ID, nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, fmt.Errorf("lookup product %q: %w", title, err)
	}

	product, err := catalog.NewImportedProduct(title)
	if err != nil {
		return uuid.Nil, err
	}

	err = r.products.Create(ctx, product)
	if errors.Is(err, shared.ErrAlreadyExists) {
		existing, findErr := r.products.FindByName(ctx, product.Name)
		if findErr != nil {
			return uuid.Nil, fmt.Errorf("re-read product %q: %w", title, findErr)
		}
		return existing.ID, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("create product %q: %w", title, err)
	}

	if err := r.stock.Create(ctx, catalog.NewEmptyStock(product.ID)); err != nil {
		r.logger.Warn("Failed to create stock row for new product",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
	}

	r.logger.Info("Product created from line item",
		zap.String("product_id", product.ID.String()),
		zap.String("title", product.Name))
	return product.ID, nil
}

// ResolveProducts resolves titles concurrently. The result is index-aligned
// with titles; the first failure cancels the remaining lookups.
func (r *Resolver) ResolveProducts(ctx context.Context, titles []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(titles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)

	for i, title := range titles {
		g.Go(func() error {
			id, err := r.ResolveProduct(gctx, title)
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}
