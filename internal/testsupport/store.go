package testsupport

import (
	"testing"

	"subfix/internal/config"
	"subfix/internal/transcache"
)

// MustOpenCache opens the transcript cache configured in cfg and registers
// cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *transcache.Store {
	t.Helper()

	store, err := transcache.Open(cfg.Cache.Path)
	if err != nil {
		t.Fatalf("transcache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
