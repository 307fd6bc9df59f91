package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeforge/backend/internal/products"
	"github.com/storeforge/backend/pkg/db/models"
	"github.com/storeforge/backend/pkg/enums"
	pkgerrors "github.com/storeforge/backend/pkg/errors"
	"github.com/storeforge/backend/pkg/pagination"
	"github.com/storeforge/backend/pkg/types"
)

type orderRepository interface {
	CreateWithTx(tx *gorm.DB, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, filter ListFilter, offset, limit int) ([]models.Order, error)
	CountByStore(ctx context.Context, storeID uuid.UUID, filter ListFilter) (int64, error)
	Update(ctx context.Context, order *models.Order) error
}

type storeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

type productInventory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	DecrementInventoryWithTx(tx *gorm.DB, productID uuid.UUID, quantity int) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ListResult is one page of orders plus pagination totals.
type ListResult struct {
	Orders     []OrderDTO        `json:"orders"`
	Pagination pagination.Result `json:"pagination"`
}

// Service exposes checkout for shoppers and order management for owners.
type Service interface {
	// Create is the public checkout path; it needs no authentication.
	Create(ctx context.Context, storeID uuid.UUID, input CreateOrderInput) (*OrderDTO, error)
	List(ctx context.Context, userID, storeID uuid.UUID, filter ListFilter, params pagination.Params) (*ListResult, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, input UpdateStatusInput) (*OrderDTO, error)
}

type service struct {
	repo      orderRepository
	stores    storeFinder
	inventory productInventory
	tx        txRunner
}

func NewService(repo orderRepository, stores storeFinder, inventory productInventory, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, stores: stores, inventory: inventory, tx: tx}, nil
}

// Create validates the cart against live products, snapshots each line, and
// commits the order together with its inventory reservations. The total is
// always recomputed server-side from the snapshots.
func (s *service) Create(ctx context.Context, storeID uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if !store.IsPublished {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "store is not accepting orders")
	}

	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if err := validateCustomer(input.Customer); err != nil {
		return nil, err
	}

	items := make(types.OrderItems, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1")
		}
		product, err := s.inventory.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "product not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if product.StoreID != storeID || !product.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available in this store")
		}

		item := types.OrderItem{
			ProductID: product.ID.String(),
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		}
		if len(product.Images) > 0 {
			item.Image = product.Images[0]
		}
		items = append(items, item)
	}

	order := &models.Order{
		StoreID:  storeID,
		Items:    items,
		Customer: input.Customer,
		Total:    items.Total(),
		Status:   enums.OrderStatusPending,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		for _, line := range input.Items {
			if err := s.inventory.DecrementInventoryWithTx(tx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		return s.repo.CreateWithTx(tx, order)
	})
	if err != nil {
		if errors.Is(err, products.ErrInsufficientInventory) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient inventory")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	return FromModel(order), nil
}

func (s *service) List(ctx context.Context, userID, storeID uuid.UUID, filter ListFilter, params pagination.Params) (*ListResult, error) {
	if _, err := s.loadOwnedStore(ctx, userID, storeID); err != nil {
		return nil, err
	}
	params = pagination.Normalize(params)

	total, err := s.repo.CountByStore(ctx, storeID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	rows, err := s.repo.ListByStore(ctx, storeID, filter, params.Offset(), params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return &ListResult{
		Orders:     out,
		Pagination: pagination.NewResult(params, total),
	}, nil
}

func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

// UpdateStatus moves an order through its lifecycle. Delivered and cancelled
// orders are frozen.
func (s *service) UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, input UpdateStatusInput) (*OrderDTO, error) {
	status, err := enums.ParseOrderStatus(strings.ToUpper(strings.TrimSpace(input.Status)))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.loadOwnedOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order is already %s", strings.ToLower(order.Status.String())))
	}

	order.Status = status
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}
	return FromModel(order), nil
}

func validateCustomer(customer types.OrderCustomer) error {
	if strings.TrimSpace(customer.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer email required")
	}
	if strings.TrimSpace(customer.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if strings.TrimSpace(customer.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer address required")
	}
	return nil
}

func (s *service) loadOwnedStore(ctx context.Context, userID, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.OwnerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store not owned by requester")
	}
	return store, nil
}

func (s *service) loadOwnedOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if _, err := s.loadOwnedStore(ctx, userID, order.StoreID); err != nil {
		return nil, err
	}
	return order, nil
}
