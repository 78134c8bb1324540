package domain

// ProductImage is one image owned by a product. Variants may point at it by ID.
type ProductImage struct {
	ID  string `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Variant is a purchasable configuration of a product (e.g. a size/color combination).
//
// Stock carries the platform-reported quantityAvailable and is advisory: a value
// of 0 can mean either "sold out" or "inventory not tracked". AvailableForSale is
// the authoritative purchasability signal.
type Variant struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	SKU              string  `json:"sku,omitempty"`
	Price            float64 `json:"price"`
	Stock            int     `json:"stock"`
	AvailableForSale bool    `json:"available_for_sale"`
	ImageID          string  `json:"image_id,omitempty"`
}

// Product is a catalog entity as returned by the catalog client. Immutable once
// handed to a caller; Price is the minimum variant price.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Images      []ProductImage `json:"images"`
	Variants    []Variant      `json:"variants"`
	Tags        []string       `json:"tags"`
}

// VariantByID returns the product's variant with the given ID, if any.
func (p *Product) VariantByID(variantID string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v, true
		}
	}
	return Variant{}, false
}

// PageInfo is the cursor state returned alongside a product listing. Only forward
// pagination is implemented; the backward fields are carried through from the
// platform for completeness.
type PageInfo struct {
	HasNextPage     bool   `json:"has_next_page"`
	EndCursor       string `json:"end_cursor,omitempty"`
	HasPreviousPage bool   `json:"has_previous_page"`
	StartCursor     string `json:"start_cursor,omitempty"`
}
