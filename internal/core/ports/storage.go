package ports

import (
	"context"
	"fmt"
)

// Storage slot keys. Points and order history are namespaced by normalized
// email; favorites and the cart are installation-global, matching the layout
// the mobile client already persists.
const (
	KeyFavorites = "favorites"
	KeySession   = "userSession"
	KeyAccounts  = "userAccounts"
	KeyCart      = "cart"
)

// PointsKey returns the per-user loyalty ledger slot.
func PointsKey(email string) string {
	return fmt.Sprintf("userPoints_%s", email)
}

// OrderHistoryKey returns the per-user order history slot.
func OrderHistoryKey(email string) string {
	return fmt.Sprintf("orderHistory_%s", email)
}

// KeyValueStore is the durable persistence gateway: named slots holding raw
// JSON payloads.
//
// Implementations must never surface I/O errors to the caller. A failed or
// undecodable read reports ok=false exactly as an absent key does, and failed
// writes are logged and swallowed. The store treats every missing slot as its
// empty default.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool)
	Set(ctx context.Context, key string, value []byte)
	Remove(ctx context.Context, key string)
}
