package kvgate

// ResolveRoute merges scopes from the outermost to the innermost. A field set
// in an inner scope overrides the enclosing one; fields still unset after the
// walk take the built-in defaults. An empty store path is valid here and
// fails later, when the store is opened.
func ResolveRoute(scopes ...RouteSettings) RouteConfig {
	var merged RouteSettings
	for _, s := range scopes {
		merged = merged.Merge(s)
	}

	cfg := RouteConfig{
		StorePath:   merged.StorePath,
		ContentType: merged.ContentType,
		Bucket:      merged.Bucket,
	}
	if cfg.ContentType == "" {
		cfg.ContentType = DefaultContentType
	}
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	return cfg
}

// Merge returns s with every field set in child overriding it.
func (s RouteSettings) Merge(child RouteSettings) RouteSettings {
	if child.StorePath != "" {
		s.StorePath = child.StorePath
	}
	if child.ContentType != "" {
		s.ContentType = child.ContentType
	}
	if child.Bucket != "" {
		s.Bucket = child.Bucket
	}
	return s
}
