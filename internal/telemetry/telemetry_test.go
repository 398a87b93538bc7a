package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestNewResourceCarriesRun(t *testing.T) {
	res, err := newResource(context.Background(), Run{MapSize: "medium", Biome: "ice", Seed: "testing"})
	if err != nil {
		t.Fatalf("newResource failed: %v", err)
	}

	want := map[attribute.Key]string{
		"service.name":     serviceName,
		"service.version":  serviceVersion,
		"game.map_size":    "medium",
		"game.biome":       "ice",
		"game.seed_phrase": "testing",
	}
	set := res.Set()
	for key, value := range want {
		got, ok := set.Value(key)
		if !ok {
			t.Errorf("Resource is missing %s", key)
			continue
		}
		if got.AsString() != value {
			t.Errorf("%s = %q, want %q", key, got.AsString(), value)
		}
	}
}

func TestNewResourceSkipsEmptyRunFields(t *testing.T) {
	res, err := newResource(context.Background(), Run{MapSize: "small"})
	if err != nil {
		t.Fatalf("newResource failed: %v", err)
	}

	set := res.Set()
	for _, key := range []attribute.Key{"game.biome", "game.seed_phrase"} {
		if _, ok := set.Value(key); ok {
			t.Errorf("Resource should not carry empty %s", key)
		}
	}
	if v, ok := set.Value("game.map_size"); !ok || v.AsString() != "small" {
		t.Errorf("game.map_size = %v, want small", v.AsString())
	}
}
