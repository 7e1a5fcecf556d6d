package kvgate

const (
	// DefaultContentType is served when no scope sets a content type.
	DefaultContentType = "application/octet-stream"
	// DefaultBucket is the bucket looked up when no scope names one.
	DefaultBucket = "default"
	// DefaultMaxPathLength caps the request path length in bytes.
	DefaultMaxPathLength = 128
)

// RouteSettings is one declared configuration scope. Empty fields are unset
// and inherit from the enclosing scope.
type RouteSettings struct {
	StorePath   string `mapstructure:"store_path" yaml:"store_path,omitempty"`
	ContentType string `mapstructure:"content_type" yaml:"content_type,omitempty"`
	Bucket      string `mapstructure:"bucket" yaml:"bucket,omitempty"`
}

// RouteConfig is the fully merged configuration of a route. It is built once
// at startup and shared read-only by every request to that route.
type RouteConfig struct {
	StorePath   string `yaml:"store_path"`
	ContentType string `yaml:"content_type"`
	Bucket      string `yaml:"bucket"`
}

// Route binds a URL pattern to its merged configuration.
type Route struct {
	Pattern string      `yaml:"pattern"`
	Config  RouteConfig `yaml:"config"`
}

// Object is a lookup result ready to be written to a response. Body is owned
// by the caller and never aliases store memory.
type Object struct {
	ContentType string
	Body        []byte
}
