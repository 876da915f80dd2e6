package loyverse

import (
	"github.com/shopspring/decimal"
)

// Price is a decimal that encodes as a bare JSON number.
type Price decimal.Decimal

// MarshalJSON encodes the price without quotes.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(p).String()), nil
}

// UnmarshalJSON accepts numbers, quoted numbers and null.
func (p *Price) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Price(decimal.Zero)
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*p = Price(d)
	return nil
}

// Decimal returns the price as a decimal.
func (p Price) Decimal() decimal.Decimal {
	return decimal.Decimal(p)
}

type item struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"item_name"`
	Description string    `json:"description"`
	CategoryID  *string   `json:"category_id"`
	ImageURL    string    `json:"image_url,omitempty"`
	Variants    []variant `json:"variants"`
	DeletedAt   *string   `json:"deleted_at,omitempty"`
}

type variant struct {
	VariantID          string `json:"variant_id,omitempty"`
	DefaultPricingType string `json:"default_pricing_type,omitempty"`
	DefaultPrice       *Price `json:"default_price"`
}

type category struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	DeletedAt *string `json:"deleted_at,omitempty"`
}

type itemsPage struct {
	Items  []item `json:"items"`
	Cursor string `json:"cursor"`
}

type categoriesPage struct {
	Categories []category `json:"categories"`
	Cursor     string     `json:"cursor"`
}

type apiErrorBody struct {
	Errors []struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"errors"`
}
