package catalog

import (
	"strconv"

	"headless-express/internal/domain"
)

// Wire shapes for the Storefront GraphQL responses.

type moneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type imageNode struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type variantNode struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	SKU               string     `json:"sku"`
	QuantityAvailable *int       `json:"quantityAvailable"`
	AvailableForSale  bool       `json:"availableForSale"`
	PriceV2           moneyV2    `json:"priceV2"`
	Image             *imageNode `json:"image"`
}

type productNode struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Handle          string   `json:"handle"`
	DescriptionHTML string   `json:"descriptionHtml"`
	Tags            []string `json:"tags"`
	PriceRange      struct {
		MinVariantPrice moneyV2 `json:"minVariantPrice"`
	} `json:"priceRange"`
	Images struct {
		Edges []struct {
			Node imageNode `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node variantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

type pageInfoPayload struct {
	HasNextPage     bool   `json:"hasNextPage"`
	EndCursor       string `json:"endCursor"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
}

type productsPayload struct {
	Products *struct {
		Edges []struct {
			Cursor string      `json:"cursor"`
			Node   productNode `json:"node"`
		} `json:"edges"`
		PageInfo pageInfoPayload `json:"pageInfo"`
	} `json:"products"`
}

type productByHandlePayload struct {
	ProductByHandle *productNode `json:"productByHandle"`
}

// parseAmount converts the platform's decimal money string to a float. An
// unparsable amount maps to 0 rather than failing the whole product.
func parseAmount(amount string) float64 {
	f, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	return f
}

// mapProduct normalizes an external product node into the internal shape.
// A missing/null quantityAvailable becomes stock 0; availableForSale is copied
// verbatim and remains the authoritative purchasability signal, since platforms
// may report 0 tracked stock for variants that are still orderable.
func mapProduct(node productNode) domain.Product {
	product := domain.Product{
		ID:          node.ID,
		Name:        node.Title,
		Slug:        node.Handle,
		Description: node.DescriptionHTML,
		Price:       parseAmount(node.PriceRange.MinVariantPrice.Amount),
		Tags:        node.Tags,
	}
	if product.Tags == nil {
		product.Tags = []string{}
	}

	for _, edge := range node.Images.Edges {
		alt := edge.Node.AltText
		if alt == "" {
			alt = node.Title
		}
		product.Images = append(product.Images, domain.ProductImage{
			ID:  edge.Node.ID,
			Src: edge.Node.URL,
			Alt: alt,
		})
	}

	for _, edge := range node.Variants.Edges {
		v := edge.Node
		stock := 0
		if v.QuantityAvailable != nil {
			stock = *v.QuantityAvailable
		}
		imageID := ""
		if v.Image != nil {
			imageID = v.Image.ID
		}
		product.Variants = append(product.Variants, domain.Variant{
			ID:               v.ID,
			Name:             v.Title,
			SKU:              v.SKU,
			Price:            parseAmount(v.PriceV2.Amount),
			Stock:            stock,
			AvailableForSale: v.AvailableForSale,
			ImageID:          imageID,
		})
	}

	return product
}
