package jetton

import (
	"context"
	"testing"
)

func TestNewCodecDefaults(t *testing.T) {
	c := NewCodec()

	t.Run("gateway", func(t *testing.T) {
		if c.gateway != DefaultIPFSGateway {
			t.Errorf("Expected gateway %q, got %q", DefaultIPFSGateway, c.gateway)
		}
	})

	t.Run("no fetcher", func(t *testing.T) {
		if c.fetcher != nil {
			t.Error("Expected no fetcher by default")
		}
	})

	t.Run("sha256 keys", func(t *testing.T) {
		if !c.ContentKey("name").Eq(ContentKey("name")) {
			t.Error("Expected default hasher")
		}
	})
}

func TestCodecOptions(t *testing.T) {
	t.Run("empty gateway keeps default", func(t *testing.T) {
		c := NewCodec(WithIPFSGateway(""))
		if c.gateway != DefaultIPFSGateway {
			t.Errorf("Expected gateway %q, got %q", DefaultIPFSGateway, c.gateway)
		}
	})

	t.Run("nil hasher keeps default", func(t *testing.T) {
		c := NewCodec(WithHasher(nil))
		if !c.ContentKey("symbol").Eq(ContentKey("symbol")) {
			t.Error("Expected default hasher")
		}
	})

	t.Run("fetcher func", func(t *testing.T) {
		called := false
		c := NewCodec(WithFetcher(FetcherFunc(func(context.Context, string) (map[string]any, error) {
			called = true
			return map[string]any{}, nil
		})))
		if _, err := c.fetcher.Fetch(context.Background(), "https://example.com"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !called {
			t.Error("Expected fetcher to be called")
		}
	})
}
