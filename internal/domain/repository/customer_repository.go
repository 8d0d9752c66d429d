package repository

import "github.com/swairua/invoicing-software-sub001/internal/domain/entity"

// CustomerRepository is the party read/write model.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	// GetByID returns (nil, nil) when the customer does not exist.
	GetByID(id string) (*entity.Customer, error)
	// GetForUpdate locks the row for the transaction; required before a
	// balance mutation.
	GetForUpdate(id string) (*entity.Customer, error)
	List() ([]*entity.Customer, error)
	Update(c *entity.Customer) error
}
