package catalog

import "headless-express/internal/domain"

// sampleProducts is the static fallback catalog served when the platform cannot
// be reached with usable credentials. IDs follow the platform's GID format so
// downstream code treats fallback data exactly like live data.
var sampleProducts = []domain.Product{
	{
		ID:          "gid://shopify/Product/1",
		Name:        "Classic Tee (Sample)",
		Slug:        "classic-tee-sample",
		Description: "A comfortable and stylish classic t-shirt, perfect for everyday wear. Made from 100% premium cotton for a soft feel and lasting quality.",
		Price:       29.99,
		Images: []domain.ProductImage{
			{ID: "gid://shopify/ProductImage/1-1", Src: "https://placehold.co/600x800.png", Alt: "Classic Tee Front"},
			{ID: "gid://shopify/ProductImage/1-2", Src: "https://placehold.co/600x800.png", Alt: "Classic Tee Back"},
		},
		Variants: []domain.Variant{
			{ID: "gid://shopify/ProductVariant/1-s", Name: "Small", SKU: "CT-SML-BLK", Price: 29.99, Stock: 10, AvailableForSale: true, ImageID: "gid://shopify/ProductImage/1-1"},
			{ID: "gid://shopify/ProductVariant/1-m", Name: "Medium", SKU: "CT-MED-BLK", Price: 29.99, Stock: 15, AvailableForSale: true, ImageID: "gid://shopify/ProductImage/1-1"},
			{ID: "gid://shopify/ProductVariant/1-l", Name: "Large", SKU: "CT-LRG-BLK", Price: 29.99, Stock: 0, AvailableForSale: false, ImageID: "gid://shopify/ProductImage/1-1"},
		},
		Tags: []string{"apparel", "t-shirt", "classic"},
	},
	{
		ID:          "gid://shopify/Product/2",
		Name:        "Canvas Tote (Sample)",
		Slug:        "canvas-tote-sample",
		Description: "A sturdy everyday tote in natural canvas with reinforced handles.",
		Price:       19.5,
		Images: []domain.ProductImage{
			{ID: "gid://shopify/ProductImage/2-1", Src: "https://placehold.co/600x800.png", Alt: "Canvas Tote"},
		},
		Variants: []domain.Variant{
			{ID: "gid://shopify/ProductVariant/2-n", Name: "Natural", SKU: "TOTE-NAT", Price: 19.5, Stock: 25, AvailableForSale: true, ImageID: "gid://shopify/ProductImage/2-1"},
			{ID: "gid://shopify/ProductVariant/2-b", Name: "Black", SKU: "TOTE-BLK", Price: 21.0, Stock: 0, AvailableForSale: true, ImageID: "gid://shopify/ProductImage/2-1"},
		},
		Tags: []string{"accessories", "bag"},
	},
	{
		ID:          "gid://shopify/Product/3",
		Name:        "Enamel Mug (Sample)",
		Slug:        "enamel-mug-sample",
		Description: "A 350ml enamel camping mug with a speckled finish.",
		Price:       12.0,
		Images: []domain.ProductImage{
			{ID: "gid://shopify/ProductImage/3-1", Src: "https://placehold.co/600x800.png", Alt: "Enamel Mug"},
		},
		Variants: []domain.Variant{
			{ID: "gid://shopify/ProductVariant/3-w", Name: "White", SKU: "MUG-WHT", Price: 12.0, Stock: 40, AvailableForSale: true, ImageID: "gid://shopify/ProductImage/3-1"},
		},
		Tags: []string{"homeware", "mug"},
	},
}

// sampleFallback truncates the sample catalog to the requested page size, with
// HasNextPage computed from whether the sample set exceeds it.
func sampleFallback(first int) ListResult {
	products := sampleProducts
	if len(products) > first {
		products = products[:first]
	}
	out := make([]domain.Product, len(products))
	copy(out, products)
	return ListResult{
		Products: out,
		PageInfo: domain.PageInfo{HasNextPage: len(sampleProducts) > first},
	}
}
