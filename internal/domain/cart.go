package domain

import "time"

// Cart is one shopper's in-progress selection, stored as a single document
// with an embedded line per product. The line caches the product's display
// fields at add time so the cart renders without a catalog join, and so a
// later product deletion leaves the line displayable.
type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"id,omitempty"`
	ShopperID string     `bson:"shopper_id" json:"shopper_id"`
	Lines     []CartLine `bson:"lines" json:"lines"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

type CartLine struct {
	ProductID          string    `bson:"product_id" json:"product_id"`
	Quantity           int       `bson:"quantity" json:"quantity"`
	Name               string    `bson:"name" json:"name"`
	PricePaise         int64     `bson:"price_paise" json:"price_paise"`
	DiscountPricePaise *int64    `bson:"discount_price_paise,omitempty" json:"discount_price_paise,omitempty"`
	Image              string    `bson:"image" json:"image"`
	Category           string    `bson:"category" json:"category"`
	AddedAt            time.Time `bson:"added_at" json:"added_at"`
}

// UnitPricePaise is the price the line is charged at: discount when present,
// base price otherwise.
func (l CartLine) UnitPricePaise() int64 {
	if l.DiscountPricePaise != nil {
		return *l.DiscountPricePaise
	}
	return l.PricePaise
}

// NewLineFromProduct denormalizes product display fields into a cart line.
func NewLineFromProduct(p *Product, quantity int) CartLine {
	return CartLine{
		ProductID:          p.ID,
		Quantity:           quantity,
		Name:               p.Name,
		PricePaise:         p.PricePaise,
		DiscountPricePaise: p.DiscountPricePaise,
		Image:              p.PrimaryImage(),
		Category:           p.Category,
	}
}

// TotalPaise sums unit price times quantity over all lines, in paise.
func (c *Cart) TotalPaise() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.UnitPricePaise() * int64(l.Quantity)
	}
	return total
}

// ItemCount is the sum of line quantities, used for the cart badge.
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// Line returns the line for a product, or nil when the cart has none.
func (c *Cart) Line(productID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
