package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hamed0406/domainwatch/internal/domain"
)

func openTestDB(t *testing.T) (*IgnoreStore, *AdminStore) {
	t.Helper()
	db, err := Open("", zap.NewNop()) // in-memory
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewIgnoreStore(db), NewAdminStore(db)
}

func TestIgnoreStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ig, _ := openTestDB(t)

	require.NoError(t, ig.Add(ctx, "a.com"))
	require.NoError(t, ig.Add(ctx, "b.com"))
	require.NoError(t, ig.Add(ctx, "a.com")) // idempotent

	hosts, err := ig.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a.com", "b.com"}, hosts)

	ok, err := ig.Contains(ctx, "a.com")
	require.NoError(t, err)
	require.True(t, ok)

	found, err := ig.Remove(ctx, "a.com")
	require.NoError(t, err)
	require.True(t, found)

	found, err = ig.Remove(ctx, "a.com")
	require.NoError(t, err)
	require.False(t, found, "second remove is a reported no-op")

	ok, err = ig.Contains(ctx, "a.com")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAdminStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, ad := openTestDB(t)

	verified := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, ad.Put(ctx, domain.Admin{Phone: "+46700000001", ChatID: 7, VerifiedAt: verified}))
	require.NoError(t, ad.Put(ctx, domain.Admin{Phone: "+46700000002", ChatID: 8, VerifiedAt: verified}))

	got, err := ad.Get(ctx, "+46700000001")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, int64(7), got.ChatID)
	require.True(t, got.VerifiedAt.Equal(verified))

	missing, err := ad.Get(ctx, "+000")
	require.NoError(t, err)
	require.Nil(t, missing)

	all, err := ad.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "+46700000001", all[0].Phone)
}

func TestStores_DoNotCollide(t *testing.T) {
	// both stores share one DB; prefixes must keep them apart
	ctx := context.Background()
	ig, ad := openTestDB(t)

	require.NoError(t, ig.Add(ctx, "a.com"))
	require.NoError(t, ad.Put(ctx, domain.Admin{Phone: "+1", ChatID: 1}))

	hosts, err := ig.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a.com"}, hosts)

	admins, err := ad.List(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
}
