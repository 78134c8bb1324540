package cart

import (
	"encoding/json"
	"fmt"
	"sync"

	"headless-express/internal/domain"
	"headless-express/internal/storage"

	"go.uber.org/zap"
)

// Notification titles emitted by cart mutations.
const (
	TitleNotAvailable    = "Not Available"
	TitleCartUpdated     = "Cart Updated"
	TitleAddedToCart     = "Added to Cart"
	TitleStockLimit      = "Stock Limit Reached"
	TitleItemRemoved     = "Item Removed"
	TitleQuantityUpdated = "Quantity Updated"
	TitleCartCleared     = "Cart Cleared"
)

// Store owns the in-process cart aggregate; every mutation goes through it.
//
// Items are kept in insertion order with a (product, variant) index for O(1)
// lookup. Each state-changing mutation serializes the full item list into the
// persistence slot before returning, and mutations that matter to the user emit
// exactly one notification per affected item, dispatched after the state change
// has committed so the message always reflects post-mutation state.
//
// The source this models ran on a single-threaded event loop; the HTTP boundary
// here is concurrent, so a mutex keeps each operation atomic.
type Store struct {
	mu       sync.Mutex
	items    []domain.CartItem
	index    map[domain.CartKey]int
	open     bool
	slot     storage.Slot
	slotKey  string
	notifier Notifier
	logger   *zap.Logger
}

// NewStore creates the cart store and rehydrates it from the persistence slot.
// Corrupt or non-array slot content is discarded (the slot is cleared and the
// cart starts empty); only a storage-level failure is returned as an error.
func NewStore(slot storage.Slot, slotKey string, notifier Notifier, logger *zap.Logger) (*Store, error) {
	if notifier == nil {
		notifier = noopNotifier{}
	}

	s := &Store{
		index:    make(map[domain.CartKey]int),
		slot:     slot,
		slotKey:  slotKey,
		notifier: notifier,
		logger:   logger,
	}

	raw, ok, err := slot.Read(slotKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !ok {
		return s, nil
	}

	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("Discarding corrupt persisted cart", zap.Error(err))
		if err := slot.Delete(slotKey); err != nil {
			logger.Error("Failed to clear corrupt cart slot", zap.Error(err))
		}
		return s, nil
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		s.index[item.Key()] = len(s.items)
		s.items = append(s.items, item)
	}

	return s, nil
}

// Add puts quantity units of the given variant into the cart, merging with an
// existing line for the same (product, variant) pair. When the variant tracks
// stock (stock > 0) the resulting quantity is capped at it; stock <= 0 means
// untracked inventory and no cap. A variant not available for sale is rejected
// with a notification and no state change. A successful add opens the cart
// drawer flag.
func (s *Store) Add(product domain.Product, variant domain.Variant, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	if !variant.AvailableForSale {
		s.notifier.Notify(domain.NewNotification(
			TitleNotAvailable,
			fmt.Sprintf("%s (%s) is currently not available for purchase.", product.Name, variant.Name),
			domain.SeverityDestructive,
		))
		return
	}

	s.mu.Lock()
	var notes []domain.Notification
	key := domain.CartKey{ProductID: product.ID, VariantID: variant.ID}

	if idx, exists := s.index[key]; exists {
		item := &s.items[idx]
		newQuantity := item.Quantity + quantity
		if variant.Stock > 0 && newQuantity > variant.Stock {
			newQuantity = variant.Stock
			notes = append(notes, domain.NewNotification(
				TitleStockLimit,
				fmt.Sprintf("Maximum available stock for %s (%s) reached. Total in cart: %d.", product.Name, variant.Name, newQuantity),
				domain.SeverityDestructive,
			))
		} else {
			notes = append(notes, domain.NewNotification(
				TitleCartUpdated,
				fmt.Sprintf("%d more %s (%s) added. Total: %d.", quantity, product.Name, variant.Name, newQuantity),
				domain.SeverityDefault,
			))
		}
		if item.Quantity != newQuantity {
			item.Quantity = newQuantity
			s.persistLocked()
		}
	} else {
		quantityToAdd := quantity
		if variant.Stock > 0 && quantityToAdd > variant.Stock {
			quantityToAdd = variant.Stock
			notes = append(notes, domain.NewNotification(
				TitleStockLimit,
				fmt.Sprintf("Only %d of %s (%s) available. Added %d to cart.", variant.Stock, product.Name, variant.Name, quantityToAdd),
				domain.SeverityDestructive,
			))
		} else {
			notes = append(notes, domain.NewNotification(
				TitleAddedToCart,
				fmt.Sprintf("%d x %s (%s) added to cart.", quantityToAdd, product.Name, variant.Name),
				domain.SeverityDefault,
			))
		}
		s.index[key] = len(s.items)
		s.items = append(s.items, domain.CartItem{Product: product, SelectedVariant: variant, Quantity: quantityToAdd})
		s.persistLocked()
	}

	s.open = true
	s.mu.Unlock()

	s.dispatch(notes)
}

// UpdateQuantity sets the quantity of an existing line. A quantity <= 0 removes
// the line. Increases on a variant no longer available for sale are rejected;
// decreases still work. Tracked stock caps the new quantity. Unknown keys are
// ignored.
func (s *Store) UpdateQuantity(productID, variantID string, quantity int) {
	s.mu.Lock()
	key := domain.CartKey{ProductID: productID, VariantID: variantID}
	idx, exists := s.index[key]
	if !exists {
		s.mu.Unlock()
		return
	}

	var notes []domain.Notification
	item := &s.items[idx]
	label := item.Label()

	switch {
	case !item.SelectedVariant.AvailableForSale && quantity > item.Quantity:
		notes = append(notes, domain.NewNotification(
			TitleNotAvailable,
			fmt.Sprintf("%s is no longer available. Quantity not increased.", label),
			domain.SeverityDestructive,
		))

	case quantity <= 0:
		s.removeAtLocked(idx)
		s.persistLocked()
		notes = append(notes, domain.NewNotification(
			TitleItemRemoved,
			fmt.Sprintf("%s removed as quantity set to 0 or less.", label),
			domain.SeverityDefault,
		))

	case item.SelectedVariant.Stock > 0 && quantity > item.SelectedVariant.Stock:
		capped := item.SelectedVariant.Stock
		notes = append(notes, domain.NewNotification(
			TitleStockLimit,
			fmt.Sprintf("Max stock for %s is %d. Quantity set to %d.", label, capped, capped),
			domain.SeverityDestructive,
		))
		if item.Quantity != capped {
			item.Quantity = capped
			s.persistLocked()
		}

	case item.Quantity != quantity:
		item.Quantity = quantity
		s.persistLocked()
		notes = append(notes, domain.NewNotification(
			TitleQuantityUpdated,
			fmt.Sprintf("%s quantity set to %d.", label, quantity),
			domain.SeverityDefault,
		))
	}

	s.mu.Unlock()
	s.dispatch(notes)
}

// Remove deletes the matching line. Removing an absent key is a no-op with no
// notification and no persisted write.
func (s *Store) Remove(productID, variantID string) {
	s.mu.Lock()
	key := domain.CartKey{ProductID: productID, VariantID: variantID}
	idx, exists := s.index[key]
	if !exists {
		s.mu.Unlock()
		return
	}

	label := s.items[idx].Label()
	s.removeAtLocked(idx)
	s.persistLocked()
	s.mu.Unlock()

	s.notifier.Notify(domain.NewNotification(
		TitleItemRemoved,
		fmt.Sprintf("%s removed from cart.", label),
		domain.SeverityDefault,
	))
}

// Clear empties the cart. The notification is always emitted, even for an
// already-empty cart; the slot is only rewritten when something was removed.
func (s *Store) Clear() {
	s.mu.Lock()
	if len(s.items) > 0 {
		s.items = nil
		s.index = make(map[domain.CartKey]int)
		s.persistLocked()
	}
	s.mu.Unlock()

	s.notifier.Notify(domain.NewNotification(
		TitleCartCleared,
		"All items removed from cart.",
		domain.SeverityDefault,
	))
}

// Checkout snapshots the cart totals and clears it in one atomic step, so a
// concurrent mutation can never land between the snapshot and the clear. An
// empty cart returns zero counts and changes nothing.
func (s *Store) Checkout() (count int, total float64) {
	s.mu.Lock()
	for _, item := range s.items {
		count += item.Quantity
		total += item.SelectedVariant.Price * float64(item.Quantity)
	}
	if count == 0 {
		s.mu.Unlock()
		return 0, 0
	}

	s.items = nil
	s.index = make(map[domain.CartKey]int)
	s.persistLocked()
	s.mu.Unlock()

	s.notifier.Notify(domain.NewNotification(
		TitleCartCleared,
		"All items removed from cart.",
		domain.SeverityDefault,
	))
	return count, total
}

// Items returns a snapshot of the cart lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the sum of line quantities, recomputed on every read.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Total is the sum of variant price times quantity, recomputed on every read.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, item := range s.items {
		total += item.SelectedVariant.Price * float64(item.Quantity)
	}
	return total
}

// IsOpen reports the cart drawer visibility flag.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// SetOpen sets the cart drawer visibility flag.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

// removeAtLocked splices out the item at idx and reindexes the tail.
func (s *Store) removeAtLocked(idx int) {
	removed := s.items[idx].Key()
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	delete(s.index, removed)
	for i := idx; i < len(s.items); i++ {
		s.index[s.items[i].Key()] = i
	}
}

// persistLocked serializes the full cart into the slot. A storage failure is
// logged rather than surfaced; the in-memory cart stays authoritative for the
// rest of the session.
func (s *Store) persistLocked() {
	items := s.items
	if items == nil {
		items = []domain.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		s.logger.Error("Failed to serialize cart", zap.Error(err))
		return
	}
	if err := s.slot.Write(s.slotKey, raw); err != nil {
		s.logger.Error("Failed to persist cart", zap.Error(err))
	}
}

func (s *Store) dispatch(notes []domain.Notification) {
	for _, n := range notes {
		s.notifier.Notify(n)
	}
}
