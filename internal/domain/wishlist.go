package domain

import "time"

// WishlistEntry is one saved-for-later product for one shopper. At most one
// entry exists per (shopper, product) pair; the store enforces this with a
// unique index and treats duplicate inserts as benign.
type WishlistEntry struct {
	ShopperID string    `bson:"shopper_id" json:"shopper_id"`
	ProductID string    `bson:"product_id" json:"product_id"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

// Wishlist is the loaded set of a shopper's entries.
type Wishlist struct {
	ShopperID string          `json:"shopper_id"`
	Entries   []WishlistEntry `json:"entries"`
}

// Contains is a pure lookup against the loaded set, no I/O.
func (w *Wishlist) Contains(productID string) bool {
	for _, e := range w.Entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// ProductIDs returns the wishlisted product ids in stored order.
func (w *Wishlist) ProductIDs() []string {
	ids := make([]string, 0, len(w.Entries))
	for _, e := range w.Entries {
		ids = append(ids, e.ProductID)
	}
	return ids
}
