package cache

import (
	"testing"
	"time"
)

func TestMemory(t *testing.T) {
	t.Run("new store is empty", func(t *testing.T) {
		store := NewMemory()
		if store.Len() != 0 {
			t.Errorf("new store Len() = %d, want 0", store.Len())
		}
	})

	t.Run("put and get", func(t *testing.T) {
		store := NewMemory()
		store.Put("https://example.com/a", "<html>a</html>", time.Minute)

		got, ok := store.Get("https://example.com/a")
		if !ok {
			t.Fatal("Get returned ok=false, expected cached body")
		}
		if got != "<html>a</html>" {
			t.Errorf("Get() = %q, want %q", got, "<html>a</html>")
		}
	})

	t.Run("get unknown key misses", func(t *testing.T) {
		store := NewMemory()
		if _, ok := store.Get("https://example.com/missing"); ok {
			t.Error("Get(unknown) ok = true, want false")
		}
	})

	t.Run("expired entries miss", func(t *testing.T) {
		store := NewMemory()
		store.Put("https://example.com/b", "body", 1*time.Millisecond)

		if _, ok := store.Get("https://example.com/b"); !ok {
			t.Fatal("Get immediately after Put missed")
		}

		time.Sleep(10 * time.Millisecond)

		if _, ok := store.Get("https://example.com/b"); ok {
			t.Error("Get after expiry ok = true, want false")
		}
	})

	t.Run("zero ttl is immediately stale", func(t *testing.T) {
		store := NewMemory()
		store.Put("https://example.com/c", "body", 0)

		if _, ok := store.Get("https://example.com/c"); ok {
			t.Error("Get after zero-ttl Put ok = true, want false")
		}
	})

	t.Run("last writer wins", func(t *testing.T) {
		store := NewMemory()
		store.Put("https://example.com/d", "first", time.Minute)
		store.Put("https://example.com/d", "second", time.Minute)

		got, ok := store.Get("https://example.com/d")
		if !ok || got != "second" {
			t.Errorf("Get() = %q, %v, want %q, true", got, ok, "second")
		}
	})

	t.Run("sweep removes expired entries", func(t *testing.T) {
		store := NewMemory()
		for i := 0; i < 5; i++ {
			store.Put("https://example.com/"+string(rune('a'+i)), "body", 1*time.Millisecond)
		}
		store.Put("https://example.com/live", "body", time.Minute)

		time.Sleep(10 * time.Millisecond)

		removed := store.Sweep()
		if removed != 5 {
			t.Errorf("Sweep() = %d, want 5", removed)
		}
		if store.Len() != 1 {
			t.Errorf("Len() after sweep = %d, want 1", store.Len())
		}
	})
}

func TestMemorySnapshot(t *testing.T) {
	t.Run("round trip keeps live entries", func(t *testing.T) {
		path := t.TempDir() + "/snapshot.json"

		store := NewMemory()
		store.Put("https://example.com/a", "body-a", time.Minute)
		store.Put("https://example.com/b", "body-b", time.Minute)

		if err := store.SaveSnapshot(path); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}

		restored := NewMemory()
		if err := restored.LoadSnapshot(path); err != nil {
			t.Fatalf("LoadSnapshot failed: %v", err)
		}

		got, ok := restored.Get("https://example.com/a")
		if !ok || got != "body-a" {
			t.Errorf("restored Get() = %q, %v, want %q, true", got, ok, "body-a")
		}
		if restored.Len() != 2 {
			t.Errorf("restored Len() = %d, want 2", restored.Len())
		}
	})

	t.Run("entries expired between save and load are dropped", func(t *testing.T) {
		path := t.TempDir() + "/snapshot.json"

		store := NewMemory()
		store.Put("https://example.com/short", "body", 5*time.Millisecond)
		if err := store.SaveSnapshot(path); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}

		time.Sleep(20 * time.Millisecond)

		restored := NewMemory()
		if err := restored.LoadSnapshot(path); err != nil {
			t.Fatalf("LoadSnapshot failed: %v", err)
		}
		if restored.Len() != 0 {
			t.Errorf("restored Len() = %d, want 0", restored.Len())
		}
	})

	t.Run("missing snapshot file is not an error", func(t *testing.T) {
		store := NewMemory()
		if err := store.LoadSnapshot(t.TempDir() + "/nope.json"); err != nil {
			t.Errorf("LoadSnapshot(missing) = %v, want nil", err)
		}
	})
}
