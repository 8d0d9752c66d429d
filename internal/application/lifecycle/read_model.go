package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/swairua/invoicing-software-sub001/internal/application/dto"
	"github.com/swairua/invoicing-software-sub001/internal/domain"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
	"github.com/swairua/invoicing-software-sub001/internal/domain/ledger"
)

// Party/product registration. These exist so the demo and the API have a
// way to seed the read-model; document operations only ever read them.

// CreateCustomer registers a trading party with a zero opening balance.
func (s *Service) CreateCustomer(ctx context.Context, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("customer name required: %w", domain.ErrValidation)
	}
	now := s.now()
	customer := &entity.Customer{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		KRAPIN:      in.KRAPIN,
		Email:       in.Email,
		Phone:       in.Phone,
		CreditLimit: in.CreditLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.tx.Run(ctx, func(repos Repos) error {
		return repos.Customers.Create(customer)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// CreateProduct registers a sellable product. An opening stock greater than
// zero is posted as an "in" movement so the audit trail starts consistent;
// opening stock on an untracked product is rejected rather than dropped.
func (s *Service) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SKU) == "" {
		return nil, fmt.Errorf("product name and sku required: %w", domain.ErrValidation)
	}
	if in.SellingPrice.IsNegative() || in.TaxRate.IsNegative() || in.CurrentStock.IsNegative() {
		return nil, fmt.Errorf("negative price, tax rate or stock: %w", domain.ErrValidation)
	}
	if in.CurrentStock.IsPositive() && !in.TrackInventory {
		return nil, fmt.Errorf("opening stock on an untracked product: %w", domain.ErrValidation)
	}
	now := s.now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		SKU:            strings.TrimSpace(in.SKU),
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		SellingPrice:   in.SellingPrice,
		Taxable:        in.Taxable,
		TaxRate:        in.TaxRate,
		TrackInventory: in.TrackInventory,
		ReorderLevel:   in.ReorderLevel,
		MinStock:       in.MinStock,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := s.tx.Run(ctx, func(repos Repos) error {
		if err := repos.Products.Create(product); err != nil {
			return err
		}
		if in.TrackInventory && in.CurrentStock.IsPositive() {
			movement, err := ledger.PostStockMovement(product, entity.MovementTypeIn, in.CurrentStock, "OPENING", false, now)
			if err != nil {
				return err
			}
			if err := repos.Products.Update(product); err != nil {
				return err
			}
			return repos.Movements.Create(movement)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// ListCustomers returns all registered customers.
func (s *Service) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	var customers []*entity.Customer
	err := s.tx.Run(ctx, func(repos Repos) error {
		var err error
		customers, err = repos.Customers.List()
		return err
	})
	return customers, err
}

// GetCustomer returns one customer by id.
func (s *Service) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	var customer *entity.Customer
	err := s.tx.Run(ctx, func(repos Repos) error {
		var err error
		customer, err = repos.Customers.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return customer, nil
}

// ListProducts returns all registered products.
func (s *Service) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	err := s.tx.Run(ctx, func(repos Repos) error {
		var err error
		products, err = repos.Products.List()
		return err
	})
	return products, err
}

// GetProduct returns one product by id.
func (s *Service) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	var product *entity.Product
	err := s.tx.Run(ctx, func(repos Repos) error {
		var err error
		product, err = repos.Products.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return product, nil
}
