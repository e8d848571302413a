// Package store implements the session/order state container: the single
// authoritative owner of authentication, favorites, cart, loyalty points, and
// order history. Memory is the state of record within a running session;
// every mutation writes through to the persistence gateway, and Initialize
// reloads from it at cold start.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bowlapp/storefront/internal/core/domain"
	"github.com/bowlapp/storefront/internal/core/ports"
)

// Built-in demo identity. Login with these exact credentials bypasses the
// account store entirely.
const (
	demoEmail    = "demo@bowlapp.com"
	demoPassword = "demo123"
	demoName     = "Demo User"
)

const minPasswordLen = 6

// Store holds all mutable application state. Safe for concurrent use; reads
// return snapshot copies so callers can never alias internal slices.
type Store struct {
	kv  ports.KeyValueStore
	log zerolog.Logger

	mu          sync.RWMutex
	initialized bool

	bowls         []domain.Bowl
	favorites     []domain.Bowl
	user          *domain.Session
	authenticated bool
	cart          []domain.CartItem
	points        domain.PointsLedger
	orderHistory  []domain.Order
}

// New creates a Store backed by the given persistence gateway. Call
// Initialize before serving traffic.
func New(kv ports.KeyValueStore, log zerolog.Logger) *Store {
	return &Store{
		kv:     kv,
		log:    log,
		points: domain.EmptyLedger(),
	}
}

// Initialize performs the cold-start read-through: favorites (deduplicated by
// id, first occurrence wins), the persisted session, and — when a session
// exists — that user's points, cart, and order history. Idempotent: repeated
// or re-entrant calls after the first are no-ops. A failed read of any slot
// degrades to that slot's empty default.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.initialized = true

	var favorites []domain.Bowl
	loadSlot(ctx, s.kv, ports.KeyFavorites, s.log, &favorites)
	deduped := dedupeFavorites(favorites)
	s.favorites = deduped

	var session domain.Session
	if loadSlot(ctx, s.kv, ports.KeySession, s.log, &session) && session.Email != "" {
		s.user = &session
		s.authenticated = true
		s.loadPointsLocked(ctx)
		loadSlot(ctx, s.kv, ports.KeyCart, s.log, &s.cart)
		loadSlot(ctx, s.kv, ports.OrderHistoryKey(session.Email), s.log, &s.orderHistory)
	}

	// Corrective write only when deduplication actually removed entries.
	if len(deduped) != len(favorites) {
		s.persist(ctx, ports.KeyFavorites, s.favorites)
	}

	s.log.Info().
		Int("favorites", len(s.favorites)).
		Bool("session", s.authenticated).
		Msg("store initialized")
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

// SetBowls stores the catalog in memory, deduplicated by id with stable
// first-occurrence order. Pure intake: the catalog is refetched each session
// and never persisted.
func (s *Store) SetBowls(bowls []domain.Bowl) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bowls = domain.DedupeBowls(bowls)
}

// Bowls returns a copy of the current catalog.
func (s *Store) Bowls() []domain.Bowl {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Bowl(nil), s.bowls...)
}

// ---------------------------------------------------------------------------
// Authentication
// ---------------------------------------------------------------------------

// Signup creates an account and logs the new user in. Validation is checked
// in order and the first failure wins: all fields non-blank, email contains
// "@", password at least six characters, no existing account under the
// normalized email.
func (s *Store) Signup(ctx context.Context, name, email, password string) ports.AuthResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	trimmedEmail := strings.TrimSpace(email)
	if name == "" || trimmedEmail == "" || strings.TrimSpace(password) == "" {
		return authFailure(fmt.Errorf("%w: please fill in all fields", domain.ErrInvalidInput))
	}
	if !strings.Contains(trimmedEmail, "@") {
		return authFailure(fmt.Errorf("%w: please enter a valid email", domain.ErrInvalidInput))
	}
	if len(password) < minPasswordLen {
		return authFailure(fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen))
	}

	normalized := domain.NormalizeEmail(email)
	accounts := s.loadAccounts(ctx)
	if _, exists := accounts[normalized]; exists {
		return authFailure(domain.ErrAccountExists)
	}

	now := time.Now().UTC()
	accounts[normalized] = domain.Account{
		Email:     normalized,
		Name:      name,
		Password:  password, // stored verbatim; documented weakness
		CreatedAt: now,
	}
	s.persist(ctx, ports.KeyAccounts, accounts)

	session := domain.Session{Email: normalized, Name: name, LoginTime: now}
	s.startSessionLocked(ctx, session)

	s.log.Info().Str("email", normalized).Msg("account created")
	return ports.AuthResult{Success: true, Session: s.sessionCopy()}
}

// Login authenticates against the account store, or against the built-in demo
// identity when the credentials match it exactly. All failures surface the
// same generic message.
func (s *Store) Login(ctx context.Context, email, password string) ports.AuthResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return authFailure(fmt.Errorf("%w: please fill in all fields", domain.ErrInvalidInput))
	}

	now := time.Now().UTC()

	if email == demoEmail && password == demoPassword {
		s.startSessionLocked(ctx, domain.Session{Email: demoEmail, Name: demoName, LoginTime: now})
		s.log.Info().Str("email", demoEmail).Msg("demo login")
		return ports.AuthResult{Success: true, Session: s.sessionCopy()}
	}

	normalized := domain.NormalizeEmail(email)
	accounts := s.loadAccounts(ctx)
	account, ok := accounts[normalized]
	if !ok || account.Password != password {
		return authFailure(domain.ErrInvalidCredentials)
	}

	s.startSessionLocked(ctx, domain.Session{Email: normalized, Name: account.Name, LoginTime: now})
	s.log.Info().Str("email", normalized).Msg("login")
	return ports.AuthResult{Success: true, Session: s.sessionCopy()}
}

// Logout clears the persisted session and resets the in-memory points to the
// zero state. The durable per-user ledger is left untouched.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.kv.Remove(ctx, ports.KeySession)
	s.user = nil
	s.authenticated = false
	s.points = domain.EmptyLedger()
}

// CurrentUser returns a copy of the active session, or nil.
func (s *Store) CurrentUser() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionCopy()
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// startSessionLocked persists the session, marks the user authenticated, and
// loads (or default-initializes) their points ledger.
func (s *Store) startSessionLocked(ctx context.Context, session domain.Session) {
	s.persist(ctx, ports.KeySession, session)
	s.user = &session
	s.authenticated = true
	s.loadPointsLocked(ctx)
}

func (s *Store) sessionCopy() *domain.Session {
	if s.user == nil {
		return nil
	}
	clone := *s.user
	return &clone
}

// ---------------------------------------------------------------------------
// Favorites
// ---------------------------------------------------------------------------

// AddFavorite appends a snapshot of the bowl. Idempotent: a bowl already
// favorited by id is left alone.
func (s *Store) AddFavorite(ctx context.Context, bowl domain.Bowl) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.favorites {
		if f.ID == bowl.ID {
			return
		}
	}
	s.favorites = append(s.favorites, bowl.Clone())
	s.persist(ctx, ports.KeyFavorites, s.favorites)
}

// RemoveFavorite filters out the bowl by id. Idempotent: removing an absent
// id still rewrites the slot.
func (s *Store) RemoveFavorite(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.favorites[:0:0]
	for _, f := range s.favorites {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	s.favorites = kept
	s.persist(ctx, ports.KeyFavorites, s.favorites)
}

// ClearAllFavorites resets the favorite set to empty.
func (s *Store) ClearAllFavorites(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites = []domain.Bowl{}
	s.persist(ctx, ports.KeyFavorites, s.favorites)
}

// Favorites returns a copy of the favorite set.
func (s *Store) Favorites() []domain.Bowl {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Bowl(nil), s.favorites...)
}

// ---------------------------------------------------------------------------
// Cart
// ---------------------------------------------------------------------------

// AddToCart appends a new cart line for the bowl and returns it. The line id
// is a fresh token, so the same bowl can appear as multiple independent
// lines. Selected ingredients default to the bowl's own list, the price to
// the bowl's price or the fallback constant, the quantity to one.
func (s *Store) AddToCart(ctx context.Context, bowl domain.Bowl, customizations domain.Customizations) domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := customizations.SelectedIngredients
	if selected == nil {
		selected = append([]string(nil), bowl.Ingredients...)
	}
	price := bowl.Price
	if price == 0 {
		price = domain.DefaultBowlPrice
	}

	item := domain.CartItem{
		ID:   uuid.NewString(),
		Bowl: bowl.Clone(),
		Customizations: domain.Customizations{
			SelectedIngredients: selected,
			Extras:              customizations.Extras,
		},
		Quantity: 1,
		Price:    price,
		AddedAt:  time.Now().UTC(),
	}
	s.cart = append(s.cart, item)
	s.persist(ctx, ports.KeyCart, s.cart)
	return item.Clone()
}

// RemoveFromCart drops the line with the given item id.
func (s *Store) RemoveFromCart(ctx context.Context, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.cart[:0:0]
	for _, item := range s.cart {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	s.cart = kept
	s.persist(ctx, ports.KeyCart, s.cart)
}

// UpdateCartItemQuantity sets the quantity of a cart line, clamped to a
// minimum of one.
func (s *Store) UpdateCartItemQuantity(ctx context.Context, itemID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}
	for i := range s.cart {
		if s.cart[i].ID == itemID {
			s.cart[i].Quantity = quantity
			break
		}
	}
	s.persist(ctx, ports.KeyCart, s.cart)
}

// ClearCart empties the cart. Also invoked after a successful order.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearCartLocked(ctx)
}

func (s *Store) clearCartLocked(ctx context.Context) {
	s.cart = []domain.CartItem{}
	s.persist(ctx, ports.KeyCart, s.cart)
}

// Cart returns a deep copy of the current cart.
func (s *Store) Cart() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneCart(s.cart)
}

// ---------------------------------------------------------------------------
// Points
// ---------------------------------------------------------------------------

// AddPoints appends an award to the history and bumps the running total.
// The total is maintained incrementally, never re-derived from a history
// scan, so it equals the sum of history amounts by construction.
func (s *Store) AddPoints(ctx context.Context, amount int, reason string) ports.PointsResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPointsLocked(ctx, amount, reason)
}

func (s *Store) addPointsLocked(ctx context.Context, amount int, reason string) ports.PointsResult {
	if !s.authenticated || s.user == nil {
		return ports.PointsResult{Success: false, Error: domain.ErrNotAuthenticated.Error(), Err: domain.ErrNotAuthenticated}
	}

	s.points.History = append(s.points.History, domain.PointsEntry{
		Amount: amount,
		Reason: reason,
		Date:   time.Now().UTC(),
	})
	s.points.Total += amount
	s.persist(ctx, ports.PointsKey(s.user.Email), s.points)

	s.log.Info().Int("amount", amount).Str("reason", reason).Int("total", s.points.Total).Msg("points awarded")
	return ports.PointsResult{Success: true, NewTotal: s.points.Total}
}

// LoadPoints refreshes the ledger from storage for the current user. No-op
// when unauthenticated.
func (s *Store) LoadPoints(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated || s.user == nil {
		return
	}
	s.loadPointsLocked(ctx)
}

func (s *Store) loadPointsLocked(ctx context.Context) {
	ledger := domain.EmptyLedger()
	loadSlot(ctx, s.kv, ports.PointsKey(s.user.Email), s.log, &ledger)
	if ledger.History == nil {
		ledger.History = []domain.PointsEntry{}
	}
	s.points = ledger
}

// Points returns a copy of the current ledger.
func (s *Store) Points() domain.PointsLedger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.points.Clone()
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

// PlaceOrder turns the current cart into an order. There is no atomicity
// across the storage writes; the step order below is the documented baseline,
// and the per-key write queue guarantees each slot's writes land in call
// order.
func (s *Store) PlaceOrder(ctx context.Context, in ports.PlaceOrderInput) ports.OrderResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 1. Preconditions: session first, then a non-empty cart.
	if !s.authenticated || s.user == nil {
		return orderFailure(domain.ErrNotAuthenticated)
	}
	if len(s.cart) == 0 {
		return orderFailure(domain.ErrEmptyCart)
	}

	// 2. Pre-tax subtotal. Tax is presentation-only and never stored.
	total := 0.0
	for _, item := range s.cart {
		total += item.Price * float64(item.Quantity)
	}

	// 3. Synthesize the order with a snapshot of the cart: later cart
	// mutations must not reach historical orders.
	order := domain.Order{
		ID:            uuid.NewString(),
		Items:         domain.CloneCart(s.cart),
		Total:         total,
		OrderType:     in.OrderType,
		PaymentMethod: in.PaymentMethod,
		SelectedTime:  in.SelectedTime,
		Status:        domain.OrderPending,
		CreatedAt:     time.Now().UTC(),
		UserEmail:     s.user.Email,
	}

	// 4. Newest first.
	s.orderHistory = append([]domain.Order{order}, s.orderHistory...)
	s.persist(ctx, ports.OrderHistoryKey(s.user.Email), s.orderHistory)

	// 5. Empty the cart and persist it.
	s.clearCartLocked(ctx)

	// 6. Award one point per whole pre-tax dollar.
	earned := int(math.Floor(total))
	s.addPointsLocked(ctx, earned, fmt.Sprintf("Order #%s", shortOrderID(order.ID)))

	s.log.Info().
		Str("order_id", order.ID).
		Float64("total", total).
		Int("points", earned).
		Str("order_type", string(in.OrderType)).
		Msg("order placed")

	clone := order
	clone.Items = domain.CloneCart(order.Items)
	return ports.OrderResult{Success: true, Order: &clone}
}

// LoadOrderHistory refreshes the current user's order list from storage.
// No-op when unauthenticated.
func (s *Store) LoadOrderHistory(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated || s.user == nil {
		return
	}
	var history []domain.Order
	loadSlot(ctx, s.kv, ports.OrderHistoryKey(s.user.Email), s.log, &history)
	s.orderHistory = history
}

// OrderHistory returns a copy of the order list, newest first.
func (s *Store) OrderHistory() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, len(s.orderHistory))
	for i, o := range s.orderHistory {
		clone := o
		clone.Items = domain.CloneCart(o.Items)
		out[i] = clone
	}
	return out
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *Store) loadAccounts(ctx context.Context) map[string]domain.Account {
	accounts := make(map[string]domain.Account)
	loadSlot(ctx, s.kv, ports.KeyAccounts, s.log, &accounts)
	return accounts
}

// persist marshals v and writes it through to the gateway. Marshal failures
// are logged and swallowed: no store operation is fatal.
func (s *Store) persist(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to encode slot")
		return
	}
	s.kv.Set(ctx, key, data)
}

// loadSlot reads and decodes one slot. A decode failure is treated exactly
// like an absent key.
func loadSlot[T any](ctx context.Context, kv ports.KeyValueStore, key string, log zerolog.Logger, out *T) bool {
	data, ok := kv.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("undecodable slot, using default")
		return false
	}
	return true
}

func dedupeFavorites(favorites []domain.Bowl) []domain.Bowl {
	deduped := domain.DedupeBowls(favorites)
	if deduped == nil {
		deduped = []domain.Bowl{}
	}
	return deduped
}

func shortOrderID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}

func authFailure(err error) ports.AuthResult {
	return ports.AuthResult{Success: false, Error: err.Error(), Err: err}
}

func orderFailure(err error) ports.OrderResult {
	return ports.OrderResult{Success: false, Error: err.Error(), Err: err}
}
