package catalog

import "fmt"

const getProductsQuery = `
  query GetProducts($first: Int!, $after: String, $query: String, $sortKey: ProductSortKeys, $reverse: Boolean) {
    products(first: $first, after: $after, query: $query, sortKey: $sortKey, reverse: $reverse) {
      edges {
        cursor
        node {
          id
          title
          handle
          descriptionHtml
          tags
          priceRange {
            minVariantPrice {
              amount
              currencyCode
            }
          }
          images(first: 2) {
            edges {
              node {
                id
                url
                altText
              }
            }
          }
          variants(first: 20) {
            edges {
              node {
                id
                title
                sku
                quantityAvailable
                availableForSale
                priceV2 {
                  amount
                  currencyCode
                }
                image {
                  id
                  url
                  altText
                }
              }
            }
          }
        }
      }
      pageInfo {
        hasNextPage
        endCursor
        hasPreviousPage
        startCursor
      }
    }
  }
`

const getProductByHandleQuery = `
  query GetProductByHandle($handle: String!) {
    productByHandle(handle: $handle) {
      id
      title
      handle
      descriptionHtml
      tags
      priceRange {
        minVariantPrice {
          amount
          currencyCode
        }
      }
      images(first: 10) {
        edges {
          node {
            id
            url
            altText
          }
        }
      }
      variants(first: 20) {
        edges {
          node {
            id
            title
            sku
            quantityAvailable
            availableForSale
            priceV2 {
              amount
              currencyCode
            }
            image {
              id
              url
              altText
            }
          }
        }
      }
    }
  }
`

// Availability filters a listing by purchasability.
type Availability string

const (
	AvailabilityAll        Availability = "all"
	AvailabilityInStock    Availability = "in-stock"
	AvailabilityOutOfStock Availability = "out-of-stock"
)

// buildSearchQuery combines a free-text query with an availability predicate into
// the platform's search syntax. The free-text part is parenthesized before
// conjunction so its own operators cannot leak into the availability clause,
// e.g. ("shirt", in-stock) -> "(shirt) AND available_for_sale:true".
func buildSearchQuery(textQuery string, availability Availability) string {
	var predicate string
	switch availability {
	case AvailabilityInStock:
		predicate = "available_for_sale:true"
	case AvailabilityOutOfStock:
		predicate = "available_for_sale:false"
	default:
		return textQuery
	}

	if textQuery == "" {
		return predicate
	}
	return fmt.Sprintf("(%s) AND %s", textQuery, predicate)
}
