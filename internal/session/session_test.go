package session_test

import (
	"casse-auctions/internal/biddingerrors"
	"casse-auctions/internal/session"
	"casse-auctions/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T, clock *testutil.StubClock) session.Store{
		"bolt": func(t *testing.T, clock *testutil.StubClock) session.Store {
			return testutil.NewTestSessionStore(t, clock)
		},
		"memory": func(t *testing.T, clock *testutil.StubClock) session.Store {
			return session.NewMemoryStore(clock)
		},
	}

	for name, newStore := range stores {
		name, newStore := name, newStore
		t.Run(name, func(t *testing.T) {
			t.Run("create_and_get", func(t *testing.T) {
				clock := testutil.FixedClock()
				store := newStore(t, clock)

				sess, err := store.Create("user1", time.Hour)
				require.NoError(t, err)
				require.Len(t, sess.Token, 64)
				require.Equal(t, clock.Now().Add(time.Hour), sess.ExpiresAt)

				got, err := store.Get(sess.Token)
				require.NoError(t, err)
				require.Equal(t, "user1", got.UserID)
				require.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))
			})

			t.Run("tokens_are_unique", func(t *testing.T) {
				store := newStore(t, testutil.FixedClock())
				a, err := store.Create("user1", time.Hour)
				require.NoError(t, err)
				b, err := store.Create("user1", time.Hour)
				require.NoError(t, err)
				require.NotEqual(t, a.Token, b.Token)
			})

			t.Run("unknown_token", func(t *testing.T) {
				store := newStore(t, testutil.FixedClock())
				_, err := store.Get("nope")
				require.ErrorIs(t, err, biddingerrors.ErrSessionNotFound)
			})

			t.Run("expired_session", func(t *testing.T) {
				clock := testutil.FixedClock()
				store := newStore(t, clock)
				sess, err := store.Create("user1", time.Hour)
				require.NoError(t, err)

				clock.Advance(time.Hour)
				_, err = store.Get(sess.Token)
				require.ErrorIs(t, err, biddingerrors.ErrSessionNotFound)
			})

			t.Run("delete", func(t *testing.T) {
				store := newStore(t, testutil.FixedClock())
				sess, err := store.Create("user1", time.Hour)
				require.NoError(t, err)

				require.NoError(t, store.Delete(sess.Token))
				_, err = store.Get(sess.Token)
				require.ErrorIs(t, err, biddingerrors.ErrSessionNotFound)
				require.NoError(t, store.Delete(sess.Token), "deleting twice is fine")
			})

			t.Run("purge_expired", func(t *testing.T) {
				clock := testutil.FixedClock()
				store := newStore(t, clock)
				short, err := store.Create("user1", time.Minute)
				require.NoError(t, err)
				long, err := store.Create("user2", time.Hour)
				require.NoError(t, err)

				clock.Advance(2 * time.Minute)
				n, err := store.PurgeExpired()
				require.NoError(t, err)
				require.Equal(t, 1, n)

				_, err = store.Get(short.Token)
				require.ErrorIs(t, err, biddingerrors.ErrSessionNotFound)
				_, err = store.Get(long.Token)
				require.NoError(t, err)
			})
		})
	}
}
