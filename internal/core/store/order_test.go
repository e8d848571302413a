package store

import (
	"context"
	"strings"
	"testing"

	"github.com/bowlapp/storefront/internal/core/domain"
	"github.com/bowlapp/storefront/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Cart
// ---------------------------------------------------------------------------

func TestAddToCart_Defaults(t *testing.T) {
	kv := newStubKV()
	s := newTestStore(kv)

	item := s.AddToCart(context.Background(), testBowl(1, "Green", 10), domain.Customizations{})

	if item.ID == "" {
		t.Error("cart line must get a fresh id")
	}
	if item.Quantity != 1 {
		t.Errorf("quantity must default to 1, got %d", item.Quantity)
	}
	if item.Price != 10 {
		t.Errorf("price must come from the bowl, got %v", item.Price)
	}
	if len(item.Customizations.SelectedIngredients) != 2 {
		t.Errorf("ingredients must default to the bowl's list, got %v", item.Customizations.SelectedIngredients)
	}
	if item.AddedAt.IsZero() {
		t.Error("AddedAt must be stamped")
	}

	var stored []domain.CartItem
	kv.decode(t, ports.KeyCart, &stored)
	if len(stored) != 1 {
		t.Errorf("cart must be persisted, got %d lines", len(stored))
	}
}

func TestAddToCart_PriceFallback(t *testing.T) {
	s := newTestStore(newStubKV())

	item := s.AddToCart(context.Background(), testBowl(1, "Green", 0), domain.Customizations{})
	if item.Price != domain.DefaultBowlPrice {
		t.Errorf("zero-price bowl must fall back to %v, got %v", domain.DefaultBowlPrice, item.Price)
	}
}

func TestAddToCart_SameBowlMakesIndependentLines(t *testing.T) {
	s := newTestStore(newStubKV())
	bowl := testBowl(1, "Green", 10)

	first := s.AddToCart(context.Background(), bowl, domain.Customizations{})
	second := s.AddToCart(context.Background(), bowl, domain.Customizations{})

	if first.ID == second.ID {
		t.Error("each add must create a distinct line id")
	}
	if len(s.Cart()) != 2 {
		t.Errorf("expected 2 lines, got %d", len(s.Cart()))
	}
}

func TestAddToCart_ExplicitCustomizationsKept(t *testing.T) {
	s := newTestStore(newStubKV())

	item := s.AddToCart(context.Background(), testBowl(1, "Green", 10), domain.Customizations{
		SelectedIngredients: []string{"tofu"},
		Extras:              map[string]any{"dressing": "sesame"},
	})

	if len(item.Customizations.SelectedIngredients) != 1 || item.Customizations.SelectedIngredients[0] != "tofu" {
		t.Errorf("explicit ingredient selection must win, got %v", item.Customizations.SelectedIngredients)
	}
	if item.Customizations.Extras["dressing"] != "sesame" {
		t.Errorf("extras must round-trip, got %v", item.Customizations.Extras)
	}
}

func TestRemoveFromCart(t *testing.T) {
	s := newTestStore(newStubKV())
	keep := s.AddToCart(context.Background(), testBowl(1, "Green", 10), domain.Customizations{})
	drop := s.AddToCart(context.Background(), testBowl(2, "Poke", 12), domain.Customizations{})

	s.RemoveFromCart(context.Background(), drop.ID)

	cart := s.Cart()
	if len(cart) != 1 || cart[0].ID != keep.ID {
		t.Errorf("expected only %s left, got %+v", keep.ID, cart)
	}
}

func TestUpdateCartItemQuantity_ClampsToOne(t *testing.T) {
	for _, quantity := range []int{0, -5} {
		s := newTestStore(newStubKV())
		item := s.AddToCart(context.Background(), testBowl(1, "Green", 10), domain.Customizations{})

		s.UpdateCartItemQuantity(context.Background(), item.ID, quantity)

		if got := s.Cart()[0].Quantity; got != 1 {
			t.Errorf("quantity %d must clamp to 1, got %d", quantity, got)
		}
	}
}

func TestUpdateCartItemQuantity_SetsQuantity(t *testing.T) {
	s := newTestStore(newStubKV())
	item := s.AddToCart(context.Background(), testBowl(1, "Green", 10), domain.Customizations{})

	s.UpdateCartItemQuantity(context.Background(), item.ID, 4)

	if got := s.Cart()[0].Quantity; got != 4 {
		t.Errorf("expected quantity 4, got %d", got)
	}
}

func TestClearCart(t *testing.T) {
	kv := newStubKV()
	s := newTestStore(kv)
	s.AddToCart(context.Background(), testBowl(1, "Green", 10), domain.Customizations{})

	s.ClearCart(context.Background())

	if len(s.Cart()) != 0 {
		t.Error("cart must be empty after clear")
	}
	var stored []domain.CartItem
	kv.decode(t, ports.KeyCart, &stored)
	if len(stored) != 0 {
		t.Errorf("persisted cart must be empty, got %d", len(stored))
	}
}

// ---------------------------------------------------------------------------
// Points
// ---------------------------------------------------------------------------

func TestAddPoints_RequiresSession(t *testing.T) {
	kv := newStubKV()
	s := newTestStore(kv)

	result := s.AddPoints(context.Background(), 10, "test")

	if result.Success {
		t.Fatal("unauthenticated award must fail")
	}
	if result.Err != domain.ErrNotAuthenticated {
		t.Errorf("expected ErrNotAuthenticated, got %v", result.Err)
	}
	if kv.writeCount() != 0 {
		t.Error("failed award must not write storage")
	}
}

func TestAddPoints_TotalEqualsHistorySum(t *testing.T) {
	kv := newStubKV()
	s := newTestStore(kv)
	signupAnn(t, s)

	amounts := []int{10, 25, 5, 100}
	for _, amount := range amounts {
		result := s.AddPoints(context.Background(), amount, "promo")
		if !result.Success {
			t.Fatalf("award failed: %s", result.Error)
		}
	}

	ledger := s.Points()
	sum := 0
	for _, entry := range ledger.History {
		sum += entry.Amount
	}
	if ledger.Total != sum {
		t.Errorf("total %d must equal history sum %d", ledger.Total, sum)
	}
	if ledger.Total != 140 {
		t.Errorf("expected total 140, got %d", ledger.Total)
	}

	// Ledger persisted under the per-user key.
	var stored domain.PointsLedger
	kv.decode(t, ports.PointsKey("ann@x.com"), &stored)
	if stored.Total != 140 || len(stored.History) != len(amounts) {
		t.Errorf("unexpected persisted ledger: %+v", stored)
	}
}

func TestLoadPoints_NoopWhenUnauthenticated(t *testing.T) {
	kv := newStubKV()
	s := newTestStore(kv)

	s.LoadPoints(context.Background())

	if p := s.Points(); p.Total != 0 {
		t.Errorf("expected untouched zero ledger, got %+v", p)
	}
}

// ---------------------------------------------------------------------------
// Order placement
// ---------------------------------------------------------------------------

func checkoutInput() ports.PlaceOrderInput {
	return ports.PlaceOrderInput{
		OrderType:     domain.OrderDineIn,
		PaymentMethod: domain.PaymentCard,
	}
}

func TestPlaceOrder_RequiresSession(t *testing.T) {
	kv := newStubKV()
	s := newTestStore(kv)

	result := s.PlaceOrder(context.Background(), checkoutInput())

	if result.Success {
		t.Fatal("unauthenticated order must fail")
	}
	if result.Err != domain.ErrNotAuthenticated {
		t.Errorf("expected ErrNotAuthenticated, got %v", result.Err)
	}
	if kv.writeCount() != 0 {
		t.Error("failed order must not write storage")
	}
}

func TestPlaceOrder_RequiresNonEmptyCart(t *testing.T) {
	kv := newStubKV()
	s := newTestStore(kv)
	signupAnn(t, s)
	before := kv.writeCount()

	result := s.PlaceOrder(context.Background(), checkoutInput())

	if result.Success {
		t.Fatal("empty-cart order must fail")
	}
	if result.Err != domain.ErrEmptyCart {
		t.Errorf("expected ErrEmptyCart, got %v", result.Err)
	}
	if kv.writeCount() != before {
		t.Error("failed order must not write storage")
	}
}

func TestPlaceOrder_SessionCheckedBeforeCart(t *testing.T) {
	s := newTestStore(newStubKV())
	// Unauthenticated and empty cart: the session failure must win.
	result := s.PlaceOrder(context.Background(), checkoutInput())
	if result.Err != domain.ErrNotAuthenticated {
		t.Errorf("session precondition must be checked first, got %v", result.Err)
	}
}

func TestPlaceOrder_Flow(t *testing.T) {
	kv := newStubKV()
	s := newTestStore(kv)
	signupAnn(t, s)

	line1 := s.AddToCart(context.Background(), testBowl(1, "Green", 10), domain.Customizations{})
	s.UpdateCartItemQuantity(context.Background(), line1.ID, 2)
	s.AddToCart(context.Background(), testBowl(2, "Poke", 5), domain.Customizations{})

	result := s.PlaceOrder(context.Background(), checkoutInput())
	if !result.Success {
		t.Fatalf("order failed: %s", result.Error)
	}
	order := result.Order

	// 10*2 + 5*1, pre-tax.
	if order.Total != 25 {
		t.Errorf("expected total 25, got %v", order.Total)
	}
	if order.Status != domain.OrderPending {
		t.Errorf("new orders start pending, got %s", order.Status)
	}
	if order.UserEmail != "ann@x.com" {
		t.Errorf("order must carry the user email, got %q", order.UserEmail)
	}
	if len(order.Items) != 2 {
		t.Errorf("expected 2 lines in the order, got %d", len(order.Items))
	}

	// One point per whole pre-tax dollar.
	if p := s.Points(); p.Total != 25 {
		t.Errorf("expected 25 points, got %d", p.Total)
	}
	entry := s.Points().History[0]
	if !strings.HasPrefix(entry.Reason, "Order #") {
		t.Errorf("unexpected award reason %q", entry.Reason)
	}
	if want := "Order #" + order.ID[:6]; entry.Reason != want {
		t.Errorf("reason %q, want %q", entry.Reason, want)
	}

	// Cart is emptied, in memory and in storage.
	if len(s.Cart()) != 0 {
		t.Error("cart must be empty after checkout")
	}
	var storedCart []domain.CartItem
	kv.decode(t, ports.KeyCart, &storedCart)
	if len(storedCart) != 0 {
		t.Errorf("persisted cart must be empty, got %d", len(storedCart))
	}

	// History persisted under the per-user key.
	var storedHistory []domain.Order
	kv.decode(t, ports.OrderHistoryKey("ann@x.com"), &storedHistory)
	if len(storedHistory) != 1 || storedHistory[0].ID != order.ID {
		t.Errorf("unexpected persisted history: %+v", storedHistory)
	}
}

func TestPlaceOrder_FractionalTotalFloorsPoints(t *testing.T) {
	s := newTestStore(newStubKV())
	signupAnn(t, s)
	s.AddToCart(context.Background(), testBowl(1, "Green", 12.99), domain.Customizations{})

	result := s.PlaceOrder(context.Background(), checkoutInput())
	if !result.Success {
		t.Fatalf("order failed: %s", result.Error)
	}
	if p := s.Points(); p.Total != 12 {
		t.Errorf("12.99 must earn 12 points, got %d", p.Total)
	}
}

func TestPlaceOrder_HistoryNewestFirst(t *testing.T) {
	s := newTestStore(newStubKV())
	signupAnn(t, s)

	s.AddToCart(context.Background(), testBowl(1, "Green", 10), domain.Customizations{})
	first := s.PlaceOrder(context.Background(), checkoutInput())
	s.AddToCart(context.Background(), testBowl(2, "Poke", 12), domain.Customizations{})
	second := s.PlaceOrder(context.Background(), checkoutInput())

	history := s.OrderHistory()
	if len(history) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(history))
	}
	if history[0].ID != second.Order.ID || history[1].ID != first.Order.ID {
		t.Error("history must be newest first")
	}
}

func TestPlaceOrder_SnapshotIsolation(t *testing.T) {
	s := newTestStore(newStubKV())
	signupAnn(t, s)
	s.AddToCart(context.Background(), testBowl(1, "Green", 10), domain.Customizations{})

	result := s.PlaceOrder(context.Background(), checkoutInput())
	if !result.Success {
		t.Fatalf("order failed: %s", result.Error)
	}

	// Mutate the returned order; history must not see it.
	result.Order.Items[0].Quantity = 99
	result.Order.Items[0].Customizations.SelectedIngredients[0] = "mutated"

	stored := s.OrderHistory()[0]
	if stored.Items[0].Quantity == 99 {
		t.Error("returned order must be a copy of the stored one")
	}
	if stored.Items[0].Customizations.SelectedIngredients[0] == "mutated" {
		t.Error("nested slices must be deep-copied")
	}
}

func TestLoadOrderHistory_NoopWhenUnauthenticated(t *testing.T) {
	kv := newStubKV()
	kv.seed(t, ports.OrderHistoryKey("ann@x.com"), []domain.Order{{ID: "order-1"}})
	s := newTestStore(kv)

	s.LoadOrderHistory(context.Background())

	if len(s.OrderHistory()) != 0 {
		t.Error("unauthenticated load must be a no-op")
	}
}
