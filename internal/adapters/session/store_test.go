package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreSetGetClear(t *testing.T) {
	store := NewStore()
	require.Empty(t, store.Get())

	store.Set("abc")
	require.Equal(t, "abc", store.Get())

	store.Set("def")
	require.Equal(t, "def", store.Get(), "set replaces the previous token")

	store.Clear()
	require.Empty(t, store.Get())
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Set("token")
		}()
		go func() {
			defer wg.Done()
			_ = store.Get()
		}()
	}
	wg.Wait()

	require.Equal(t, "token", store.Get())
}

func TestHubReturnsSameSessionForSameID(t *testing.T) {
	built := 0
	hub := NewHub(func(id string) *Session {
		built++
		return &Session{ID: id, Credential: NewStore()}
	})

	first := hub.GetOrCreate("sess-1")
	second := hub.GetOrCreate("sess-1")
	other := hub.GetOrCreate("sess-2")

	require.Same(t, first, second)
	require.NotSame(t, first, other)
	require.Equal(t, 2, built, "build runs once per id")
}

func TestHubDrop(t *testing.T) {
	hub := NewHub(func(id string) *Session {
		return &Session{ID: id, Credential: NewStore()}
	})

	first := hub.GetOrCreate("sess-1")
	first.Credential.Set("abc")

	hub.Drop("sess-1")
	fresh := hub.GetOrCreate("sess-1")

	require.NotSame(t, first, fresh)
	require.Empty(t, fresh.Credential.Get(), "a dropped session leaves no credential behind")
}

func TestSessionsAreIsolated(t *testing.T) {
	hub := NewHub(func(id string) *Session {
		return &Session{ID: id, Credential: NewStore()}
	})

	a := hub.GetOrCreate("a")
	b := hub.GetOrCreate("b")

	a.Credential.Set("token-a")

	require.Empty(t, b.Credential.Get(), "tokens never leak across browser sessions")
}
