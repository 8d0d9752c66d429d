package repository

import "github.com/swairua/invoicing-software-sub001/internal/domain/entity"

// ProductRepository is the product read/write model. Stock fields are only
// ever written through the lifecycle service's transactions.
type ProductRepository interface {
	Create(p *entity.Product) error
	// GetByID returns (nil, nil) when the product does not exist.
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate locks the row for the transaction; required before any
	// stock mutation.
	GetForUpdate(id string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Update(p *entity.Product) error
}
