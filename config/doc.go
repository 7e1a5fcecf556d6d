// Package config provides configuration loading and validation for kvgate.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (KVGATE_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	routes, err := cfg.ResolveRoutes()
//
// # Environment Variables
//
// All config keys map to environment variables with KVGATE_ prefix:
//   - server.port → KVGATE_SERVER_PORT
//   - store.store_path → KVGATE_STORE_STORE_PATH
//   - log.level → KVGATE_LOG_LEVEL
//
// # Routes
//
// The store block is the outermost scope. Each entry under routes is a
// nested scope mounted at its path; nested entries extend the parent path.
// A setting left empty inherits from the enclosing scope, and anything still
// empty at the top takes the built-in default (content type
// application/octet-stream, bucket "default"). Paths are literal prefixes;
// router pattern characters (*, { and }) are rejected:
//
//	store:
//	  store_path: /var/lib/kvgate/main.db
//	routes:
//	  - path: /images
//	    content_type: image/png
//	    routes:
//	      - path: /thumbs
//	        content_type: image/jpeg
//	  - path: /docs
//	    store_path: /var/lib/kvgate/docs.db
//
// With no routes declared, the store block is served at "/".
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - max_path_length must be at least 1
//   - Route paths must start with "/" and be unique once flattened
//   - Log level must be debug, info, warn, or error
package config
