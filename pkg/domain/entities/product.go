package entities

import "fmt"

// PartNumber represents a unique product identifier
type PartNumber string

// Quantity represents an integer quantity value for discrete purchase units
type Quantity int64

// PartnerID identifies a vendor
type PartnerID string

// Product represents a purchasable item with its vendor offers
type Product struct {
	PartNumber    PartNumber
	Description   string
	UnitOfMeasure string
	Sellers       []*SupplierInfo
}

// NewProduct creates a validated Product
func NewProduct(partNumber PartNumber, description, uom string) (*Product, error) {
	if partNumber == "" {
		return nil, fmt.Errorf("%w: part number cannot be empty", ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description cannot be empty", ErrValidation)
	}
	if uom == "" {
		uom = "EA"
	}
	return &Product{
		PartNumber:    partNumber,
		Description:   description,
		UnitOfMeasure: uom,
	}, nil
}

// AddSeller creates a vendor offer for the product and appends it to Sellers
func (p *Product) AddSeller(vals SupplierInfoValues) (*SupplierInfo, error) {
	vals.PartNumber = p.PartNumber
	info, err := NewSupplierInfo(vals)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", p.PartNumber, err)
	}
	p.Sellers = append(p.Sellers, info)
	return info, nil
}
