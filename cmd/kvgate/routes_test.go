package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sagarc03/kvgate"
	"github.com/sagarc03/kvgate/config"
)

func TestMatchRoute(t *testing.T) {
	routes := []kvgate.Route{
		{Pattern: "/", Config: kvgate.RouteConfig{StorePath: "root.db"}},
		{Pattern: "/images", Config: kvgate.RouteConfig{StorePath: "images.db"}},
		{Pattern: "/images/thumbs", Config: kvgate.RouteConfig{StorePath: "thumbs.db"}},
	}

	tt := []struct {
		Name    string
		Path    string
		WantDB  string
		WantHit bool
	}{
		{Name: "root", Path: "/42", WantDB: "root.db", WantHit: true},
		{Name: "prefix", Path: "/images/42", WantDB: "images.db", WantHit: true},
		{Name: "exact prefix", Path: "/images", WantDB: "images.db", WantHit: true},
		{Name: "longest prefix wins", Path: "/images/thumbs/42", WantDB: "thumbs.db", WantHit: true},
		{Name: "no partial segment match", Path: "/imagesx/42", WantDB: "root.db", WantHit: true},
		{Name: "relative path", Path: "42", WantHit: false},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			got, ok := matchRoute(routes, tc.Path)
			assert.Equal(t, tc.WantHit, ok)
			if tc.WantHit {
				assert.Equal(t, tc.WantDB, got.Config.StorePath)
			}
		})
	}
}

func TestMatchRoute_NoRoot(t *testing.T) {
	routes := []kvgate.Route{{Pattern: "/images"}}

	_, ok := matchRoute(routes, "/other/42")
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	tt := []struct {
		In   string
		Want slog.Level
	}{
		{In: "debug", Want: slog.LevelDebug},
		{In: " INFO ", Want: slog.LevelInfo},
		{In: "warn", Want: slog.LevelWarn},
		{In: "warning", Want: slog.LevelWarn},
		{In: "error", Want: slog.LevelError},
		{In: "", Want: slog.LevelInfo},
		{In: "bogus", Want: slog.LevelInfo},
	}

	for _, tc := range tt {
		t.Run(tc.In, func(t *testing.T) {
			assert.Equal(t, tc.Want, parseLevel(tc.In))
		})
	}
}

func TestLogLevel(t *testing.T) {
	tt := []struct {
		Name  string
		Env   string
		Level string
		Want  slog.Level
	}{
		{Name: "dev default", Env: "dev", Want: slog.LevelDebug},
		{Name: "unset env default", Want: slog.LevelDebug},
		{Name: "prod default", Env: "prod", Want: slog.LevelInfo},
		{Name: "production default", Env: "production", Want: slog.LevelInfo},
		{Name: "explicit level wins in dev", Env: "dev", Level: "warn", Want: slog.LevelWarn},
		{Name: "explicit level wins in prod", Env: "prod", Level: "debug", Want: slog.LevelDebug},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			cfg := &config.Config{Env: tc.Env, Log: config.LogConfig{Level: tc.Level}}

			assert.Equal(t, tc.Want, logLevel(cfg))
		})
	}
}
