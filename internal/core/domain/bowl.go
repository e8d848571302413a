package domain

import "time"

// DefaultBowlPrice is charged for a cart line whose bowl carries no price.
const DefaultBowlPrice = 12.99

// Bowl is a purchasable meal item from the catalog. Identity key: ID.
// JSON field names follow the storage payload format, so persisted slots
// round-trip unchanged across versions.
type Bowl struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Image       string   `json:"image,omitempty"`
	Ingredients []string `json:"ingredients"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price,omitempty"`
}

// Clone returns a deep copy of the bowl. Favorites and cart lines hold
// snapshots, never references into the live catalog.
func (b Bowl) Clone() Bowl {
	clone := b
	clone.Ingredients = append([]string(nil), b.Ingredients...)
	return clone
}

// DedupeBowls removes bowls with repeated ids, keeping the first occurrence
// and preserving order. Pure; the input slice is not modified.
func DedupeBowls(bowls []Bowl) []Bowl {
	seen := make(map[int]struct{}, len(bowls))
	out := make([]Bowl, 0, len(bowls))
	for _, b := range bowls {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	return out
}

// Customizations captures per-line choices made when a bowl is added to the
// cart. SelectedIngredients defaults to the bowl's own ingredient list.
type Customizations struct {
	SelectedIngredients []string       `json:"selectedIngredients"`
	Extras              map[string]any `json:"extras,omitempty"`
}

// CartItem is one line in the pending order. ID is a fresh token generated at
// add time, distinct from Bowl.ID: the same bowl may appear as multiple
// independent lines.
type CartItem struct {
	ID             string         `json:"id"`
	Bowl           Bowl           `json:"bowl"`
	Customizations Customizations `json:"customizations"`
	Quantity       int            `json:"quantity"`
	Price          float64        `json:"price"`
	AddedAt        time.Time      `json:"addedAt"`
}

// Clone returns a deep copy of the cart line.
func (i CartItem) Clone() CartItem {
	clone := i
	clone.Bowl = i.Bowl.Clone()
	clone.Customizations.SelectedIngredients = append([]string(nil), i.Customizations.SelectedIngredients...)
	if i.Customizations.Extras != nil {
		extras := make(map[string]any, len(i.Customizations.Extras))
		for k, v := range i.Customizations.Extras {
			extras[k] = v
		}
		clone.Customizations.Extras = extras
	}
	return clone
}

// CloneCart deep-copies a whole cart.
func CloneCart(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
