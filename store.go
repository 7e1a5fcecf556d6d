package kvgate

import "context"

// StoreReader defines the read-only contract of the embedded store.
//
// Implementations open the store named by the route, run exactly one
// read-only transaction and release every resource before returning. No
// handle may outlive a call, so implementations hold no state shared between
// concurrent lookups.
type StoreReader interface {
	// Lookup retrieves the value stored under key.
	//
	// Parameters:
	//   - ctx: Context for cancellation; checked before the store is opened
	//   - route: Merged route configuration naming the store file and bucket
	//   - key: The lookup key, possibly empty
	//
	// Returns:
	//   - []byte: A copy of the value, owned by the caller. It must not alias
	//     memory belonging to the store's transaction.
	//   - error: ErrNotFound if the key is absent, ErrStoreOpen if the store
	//     cannot be opened, ErrAllocation if the value cannot be buffered, or
	//     ErrStoreRead for any other failure during the transaction
	Lookup(ctx context.Context, route RouteConfig, key []byte) ([]byte, error)
}
