// Package kvgate provides a read-only HTTP gateway over an embedded,
// memory-mapped key-value store.
//
// A request path is reduced to its final segment, which is looked up in the
// store configured for the matched route. The value is copied out of the
// store's read transaction and returned as the response body.
//
// # Key Components
//
//   - RouteSettings / ResolveRoute: scoped route configuration with inheritance
//   - ResolveKey: bounded extraction of the lookup key from a raw path
//   - StoreReader: interface for open-read-close store access (see boltstore)
//   - Gateway: combines key resolution and store access for one request
//
// # Example Usage
//
//	route := kvgate.ResolveRoute(
//	    kvgate.RouteSettings{StorePath: "/var/lib/kvgate/images.db"},
//	    kvgate.RouteSettings{ContentType: "image/png"},
//	)
//
//	gateway, err := kvgate.NewGateway(boltstore.NewReader(boltstore.Options{}), kvgate.GatewayConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	obj, err := gateway.Get(ctx, route, "/images/42")
//
// See the http package for the request dispatcher and the boltstore package
// for the bbolt-backed reader.
package kvgate
