package entities

import (
	"fmt"

	"github.com/google/uuid"
)

// Customer represents a trade customer who places orders
type Customer struct {
	ID    uuid.UUID
	Code  string
	Name  string
	Email string
	Phone string
}

// NewCustomer creates a validated Customer
func NewCustomer(code, name, email, phone string) (*Customer, error) {
	if code == "" {
		return nil, fmt.Errorf("customer code cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("customer name cannot be empty")
	}
	return &Customer{
		ID:    uuid.New(),
		Code:  code,
		Name:  name,
		Email: email,
		Phone: phone,
	}, nil
}

// Manufacturer represents a supplier whose products the catalog carries
type Manufacturer struct {
	ID   uuid.UUID
	Code string
	Name string
}

// NewManufacturer creates a validated Manufacturer
func NewManufacturer(code, name string) (*Manufacturer, error) {
	if code == "" {
		return nil, fmt.Errorf("manufacturer code cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("manufacturer name cannot be empty")
	}
	return &Manufacturer{
		ID:   uuid.New(),
		Code: code,
		Name: name,
	}, nil
}
