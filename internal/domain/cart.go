package domain

// CartKey uniquely identifies a cart line: no two items share a (product, variant) pair.
type CartKey struct {
	ProductID string
	VariantID string
}

// CartItem is a product snapshot plus the chosen variant and a positive quantity.
// Items never exist with quantity <= 0; they are removed instead.
type CartItem struct {
	Product
	SelectedVariant Variant `json:"selected_variant"`
	Quantity        int     `json:"quantity"`
}

// Key returns the item's uniqueness key.
func (i CartItem) Key() CartKey {
	return CartKey{ProductID: i.ID, VariantID: i.SelectedVariant.ID}
}

// Label is the "Product (Variant)" form used in user-facing notifications.
func (i CartItem) Label() string {
	return i.Name + " (" + i.SelectedVariant.Name + ")"
}
