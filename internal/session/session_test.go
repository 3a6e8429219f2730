package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/money-tracker/internal/api"
	"github.com/Veraticus/money-tracker/internal/model"
)

type stubVerifier struct {
	user  *model.User
	err   error
	calls atomic.Int32
}

func (v *stubVerifier) Me(_ context.Context) (*model.User, error) {
	v.calls.Add(1)
	return v.user, v.err
}

type failingTokenStore struct {
	MemoryTokenStore
}

func (f *failingTokenStore) SaveToken(string) error { return errors.New("disk full") }
func (f *failingTokenStore) ClearToken() error      { return errors.New("disk full") }

func TestStore_BootstrapWithoutToken(t *testing.T) {
	store := NewStore(NewMemoryTokenStore(""))
	verifier := &stubVerifier{}

	assert.Equal(t, Loading, store.Status())
	assert.Equal(t, Anonymous, store.Bootstrap(context.Background(), verifier))
	assert.Zero(t, verifier.calls.Load(), "no network call without a token")
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
}

func TestStore_BootstrapValidToken(t *testing.T) {
	tokens := NewMemoryTokenStore("good")
	store := NewStore(tokens)
	verifier := &stubVerifier{user: &model.User{ID: "u1", Username: "budi", Role: model.RoleUser}}

	assert.Equal(t, Authenticated, store.Bootstrap(context.Background(), verifier))
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "budi", store.User().Username)
	assert.Equal(t, "good", store.Token())
	assert.Equal(t, model.RoleUser, store.Role())

	persisted, _ := tokens.LoadToken()
	assert.Equal(t, "good", persisted)
}

func TestStore_BootstrapInvalidToken(t *testing.T) {
	tokens := NewMemoryTokenStore("expired")
	store := NewStore(tokens)
	verifier := &stubVerifier{err: &api.Error{StatusCode: http.StatusUnauthorized, Detail: "Token has expired"}}

	assert.Equal(t, Anonymous, store.Bootstrap(context.Background(), verifier))
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())

	persisted, _ := tokens.LoadToken()
	assert.Empty(t, persisted, "rejected token is cleared")
}

func TestStore_BootstrapIsSingleShot(t *testing.T) {
	store := NewStore(NewMemoryTokenStore("good"))
	verifier := &stubVerifier{user: &model.User{ID: "u1"}}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, Authenticated, store.Bootstrap(context.Background(), verifier))
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), verifier.calls.Load())
}

func TestStore_LoginAndLogout(t *testing.T) {
	tokens := NewMemoryTokenStore("")
	store := NewStore(tokens)
	store.Bootstrap(context.Background(), &stubVerifier{})

	require.NoError(t, store.Login(model.User{ID: "u1", Username: "admin", Role: model.RoleSuperadmin}, "jwt"))
	assert.Equal(t, Authenticated, store.Status())
	assert.True(t, store.User().IsSuperadmin())
	persisted, _ := tokens.LoadToken()
	assert.Equal(t, "jwt", persisted)

	store.Logout()
	assert.Equal(t, Anonymous, store.Status())
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	persisted, _ = tokens.LoadToken()
	assert.Empty(t, persisted)
}

func TestStore_LoginBeforeBootstrap(t *testing.T) {
	store := NewStore(NewMemoryTokenStore("stale"))
	verifier := &stubVerifier{err: errors.New("boom")}

	require.NoError(t, store.Login(model.User{ID: "u1"}, "fresh"))
	assert.Equal(t, Authenticated, store.Bootstrap(context.Background(), verifier))
	assert.Zero(t, verifier.calls.Load())
	assert.Equal(t, "fresh", store.Token())
}

func TestStore_PersistenceFailures(t *testing.T) {
	store := NewStore(&failingTokenStore{})

	err := store.Login(model.User{ID: "u1"}, "jwt")
	assert.Error(t, err)
	assert.True(t, store.IsAuthenticated(), "session is usable even if it cannot be persisted")

	assert.NotPanics(t, store.Logout)
	assert.False(t, store.IsAuthenticated())
}

func TestStore_UserIsACopy(t *testing.T) {
	store := NewStore(NewMemoryTokenStore(""))
	require.NoError(t, store.Login(model.User{Username: "budi"}, "jwt"))

	u := store.User()
	u.Username = "changed"
	assert.Equal(t, "budi", store.User().Username)
}

// The store is the token provider of a real client: the bootstrap request
// carries the stored token and a rejection signs the user out.
func TestStore_BootstrapThroughClient(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Status
	}{
		{"accepted", http.StatusOK, Authenticated},
		{"rejected", http.StatusUnauthorized, Anonymous},
		{"server error", http.StatusInternalServerError, Anonymous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				w.WriteHeader(tt.status)
				if tt.status == http.StatusOK {
					_, _ = w.Write([]byte(`{"id":"u1","username":"budi","role":"user"}`))
					return
				}
				_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
			}))
			defer server.Close()

			tokens := NewMemoryTokenStore("stored")
			store := NewStore(tokens)
			client := api.New(server.URL+"/api", store)

			assert.Equal(t, tt.want, store.Bootstrap(context.Background(), client))
			assert.Equal(t, "Bearer stored", gotAuth)

			persisted, _ := tokens.LoadToken()
			if tt.want == Authenticated {
				assert.Equal(t, "stored", persisted)
			} else {
				assert.Empty(t, persisted)
			}
		})
	}
}

func TestStore_BootstrapMalformedResponse(t *testing.T) {
	tests := map[string]string{
		"not json":     `not json`,
		"null":         `null`,
		"empty object": `{}`,
		"no username":  `{"id":"u1","role":"user"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			tokens := NewMemoryTokenStore("stored")
			store := NewStore(tokens)
			assert.Equal(t, Anonymous, store.Bootstrap(context.Background(), api.New(server.URL, store)))
			assert.Nil(t, store.User())

			persisted, _ := tokens.LoadToken()
			assert.Empty(t, persisted)
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "anonymous", Anonymous.String())
}
