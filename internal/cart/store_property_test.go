package cart

import (
	"testing"

	"headless-express/internal/domain"
	"headless-express/internal/storage"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

func propertyStore(t *testing.T) (*Store, *storage.MemorySlot) {
	t.Helper()
	slot := storage.NewMemorySlot()
	store, err := NewStore(slot, "prop_cart", nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store, slot
}

func variantWithStock(stock int) (domain.Product, domain.Variant) {
	variant := domain.Variant{
		ID:               "gid://shopify/ProductVariant/p-1",
		Name:             "One Size",
		Price:            12.5,
		Stock:            stock,
		AvailableForSale: true,
	}
	product := domain.Product{
		ID:       "gid://shopify/Product/p",
		Name:     "Prop Product",
		Slug:     "prop-product",
		Price:    12.5,
		Variants: []domain.Variant{variant},
	}
	return product, variant
}

// Property: for tracked stock, no sequence of adds leaves the line quantity
// above variant stock.
func TestProperty_AddNeverExceedsTrackedStock(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("cart quantity stays within stock for stock > 0", prop.ForAll(
		func(stock int, additions []int) bool {
			store, _ := propertyStore(t)
			product, variant := variantWithStock(stock)

			for _, quantity := range additions {
				store.Add(product, variant, quantity)
			}

			for _, item := range store.Items() {
				if item.Quantity > stock {
					t.Logf("FAIL: quantity %d exceeds stock %d", item.Quantity, stock)
					return false
				}
				if item.Quantity <= 0 {
					t.Logf("FAIL: non-positive quantity %d stored", item.Quantity)
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 50),
		gen.SliceOf(gen.IntRange(1, 30)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: updating to a non-positive quantity always removes the line.
func TestProperty_UpdateToNonPositiveRemoves(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("quantity <= 0 leaves the key absent", prop.ForAll(
		func(initial int, update int) bool {
			store, _ := propertyStore(t)
			product, variant := variantWithStock(0) // untracked, uncapped

			store.Add(product, variant, initial)
			store.UpdateQuantity(product.ID, variant.ID, update)

			for _, item := range store.Items() {
				if item.Key() == (domain.CartKey{ProductID: product.ID, VariantID: variant.ID}) {
					t.Logf("FAIL: item still present with quantity %d after update to %d", item.Quantity, update)
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 100),
		gen.IntRange(-20, 0),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: the derived total always equals the fresh sum of price x quantity,
// no matter the mutation sequence.
func TestProperty_TotalMatchesItemSum(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total equals sum over items of price times quantity", prop.ForAll(
		func(quantities []int, updates []int) bool {
			store, _ := propertyStore(t)

			for i, quantity := range quantities {
				variant := domain.Variant{
					ID:               "gid://shopify/ProductVariant/t-" + string(rune('a'+i%26)),
					Name:             "Variant",
					Price:            float64(i%7) + 0.99,
					Stock:            0,
					AvailableForSale: true,
				}
				product := domain.Product{
					ID:       "gid://shopify/Product/t-" + string(rune('a'+i%26)),
					Name:     "Total Product",
					Variants: []domain.Variant{variant},
				}
				store.Add(product, variant, quantity)
			}

			items := store.Items()
			for i, update := range updates {
				if len(items) == 0 {
					break
				}
				target := items[i%len(items)]
				store.UpdateQuantity(target.ID, target.SelectedVariant.ID, update)
			}

			expectedTotal := 0.0
			expectedCount := 0
			for _, item := range store.Items() {
				expectedTotal += item.SelectedVariant.Price * float64(item.Quantity)
				expectedCount += item.Quantity
			}

			if diff := store.Total() - expectedTotal; diff > 1e-6 || diff < -1e-6 {
				t.Logf("FAIL: total %f != expected %f", store.Total(), expectedTotal)
				return false
			}
			if store.Count() != expectedCount {
				t.Logf("FAIL: count %d != expected %d", store.Count(), expectedCount)
				return false
			}
			return true
		},
		gen.SliceOf(gen.IntRange(1, 10)),
		gen.SliceOf(gen.IntRange(-3, 15)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: persisting and reloading the cart yields the same keys and quantities.
func TestProperty_SlotRoundTripPreservesCart(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("reload from slot is lossless", prop.ForAll(
		func(quantities []int) bool {
			slot := storage.NewMemorySlot()
			store, err := NewStore(slot, "prop_cart", nil, zap.NewNop())
			if err != nil {
				t.Logf("FAIL: NewStore: %v", err)
				return false
			}

			for i, quantity := range quantities {
				variant := domain.Variant{
					ID:               "gid://shopify/ProductVariant/r-" + string(rune('a'+i%26)),
					Name:             "Variant",
					Price:            float64(i) + 1,
					Stock:            0,
					AvailableForSale: true,
				}
				product := domain.Product{
					ID:       "gid://shopify/Product/r-" + string(rune('a'+i%26)),
					Name:     "Round Trip",
					Variants: []domain.Variant{variant},
				}
				store.Add(product, variant, quantity)
			}

			reloaded, err := NewStore(slot, "prop_cart", nil, zap.NewNop())
			if err != nil {
				t.Logf("FAIL: reload: %v", err)
				return false
			}

			before := store.Items()
			after := reloaded.Items()
			if len(before) != len(after) {
				t.Logf("FAIL: item count changed across reload: %d vs %d", len(before), len(after))
				return false
			}
			for i := range before {
				if before[i].Key() != after[i].Key() || before[i].Quantity != after[i].Quantity {
					t.Logf("FAIL: item %d changed across reload", i)
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(1, 10)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
