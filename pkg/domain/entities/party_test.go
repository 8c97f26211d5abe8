package entities

import (
	"testing"
)

func TestNewCustomer(t *testing.T) {
	customer, err := NewCustomer("BAYSIDE", "Bayside Floors LLC", "orders@baysidefloors.test", "555-0142")
	if err != nil {
		t.Fatalf("Expected valid customer creation to succeed: %v", err)
	}
	if customer.Code != "BAYSIDE" {
		t.Errorf("Expected code BAYSIDE, got %s", customer.Code)
	}
	if customer.ID.String() == "" {
		t.Error("Expected customer to get an ID")
	}

	testCases := []struct {
		name        string
		code        string
		custName    string
		expectError string
	}{
		{"empty code", "", "Bayside Floors LLC", "customer code cannot be empty"},
		{"empty name", "BAYSIDE", "", "customer name cannot be empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCustomer(tc.code, tc.custName, "", "")
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestNewManufacturer(t *testing.T) {
	manufacturer, err := NewManufacturer("ACME", "ACME Hardwoods")
	if err != nil {
		t.Fatalf("Expected valid manufacturer creation to succeed: %v", err)
	}
	if manufacturer.Code != "ACME" {
		t.Errorf("Expected code ACME, got %s", manufacturer.Code)
	}

	if _, err := NewManufacturer("", "ACME Hardwoods"); err == nil {
		t.Error("Expected error for empty manufacturer code, but got none")
	}
	if _, err := NewManufacturer("ACME", ""); err == nil {
		t.Error("Expected error for empty manufacturer name, but got none")
	}
}
