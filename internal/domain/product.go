package domain

import "time"

const (
	// PlaceholderImage is served when a product row carries no images or a
	// cart line references a product that has since been deleted.
	PlaceholderImage = "/images/placeholder-product.svg"

	// DefaultCategory is used when a product has no category assigned.
	DefaultCategory = "Fashion"
)

type Product struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	PricePaise         int64     `json:"price_paise"`
	DiscountPricePaise *int64    `json:"discount_price_paise,omitempty"`
	Images             []string  `json:"images"`
	Category           string    `json:"category"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Normalize makes a product safe to render: missing fields are replaced with
// defined fallbacks instead of propagating empty values to the client.
func (p *Product) Normalize() {
	if len(p.Images) == 0 {
		p.Images = []string{PlaceholderImage}
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
}

// PrimaryImage returns the first image, or the placeholder when none exist.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 || p.Images[0] == "" {
		return PlaceholderImage
	}
	return p.Images[0]
}

// EffectivePricePaise is the price actually charged: the discount price when
// present, the base price otherwise.
func (p *Product) EffectivePricePaise() int64 {
	if p.DiscountPricePaise != nil {
		return *p.DiscountPricePaise
	}
	return p.PricePaise
}

// OnSale reports whether the product carries a discount price.
func (p *Product) OnSale() bool {
	return p.DiscountPricePaise != nil
}
