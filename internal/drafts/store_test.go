package drafts

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/lats-hub/repairgo/internal/intake"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	s := New(mr.Addr())
	ctx := context.Background()

	_, found, err := s.Get(ctx, "cust-1")
	require.NoError(t, err)
	require.False(t, found)

	form := intake.Form{
		CustomerID:   "cust-1",
		Brand:        "Tecno",
		Model:        "Spark 10",
		SerialNumber: "123456789012345",
	}
	require.NoError(t, s.Save(ctx, "cust-1", form))

	got, found, err := s.Get(ctx, "cust-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, form, got)
}

func TestStore_CustomerIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	s := New(mr.Addr())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "cust-1", intake.Form{CustomerID: "cust-1", Model: "A"}))
	require.NoError(t, s.Save(ctx, "cust-2", intake.Form{CustomerID: "cust-2", Model: "B"}))

	one, _, err := s.Get(ctx, "cust-1")
	require.NoError(t, err)
	two, _, err := s.Get(ctx, "cust-2")
	require.NoError(t, err)
	require.Equal(t, "A", one.Model)
	require.Equal(t, "B", two.Model)
}

func TestStore_ClearAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	s := New(mr.Addr())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "cust-1", intake.Form{CustomerID: "cust-1"}))
	require.NoError(t, s.Clear(ctx, "cust-1"))
	_, found, err := s.Get(ctx, "cust-1")
	require.NoError(t, err)
	require.False(t, found)

	// Clearing again is a no-op, not an error.
	require.NoError(t, s.Clear(ctx, "cust-1"))

	// Drafts age out after the TTL.
	require.NoError(t, s.Save(ctx, "cust-1", intake.Form{CustomerID: "cust-1"}))
	mr.FastForward(defaultTTL + time.Minute)
	_, found, err = s.Get(ctx, "cust-1")
	require.NoError(t, err)
	require.False(t, found)
}
