package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/iho/payapi"
	"github.com/iho/payapi/cache"
)

func newTestCache(t *testing.T, ttl time.Duration) (*cache.ResourceCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return cache.New(client, ttl), mr
}

func TestResourceCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	transfer := &payapi.Transfer{
		ID:       "tr_1",
		Amount:   1000,
		Created:  1690000000,
		Currency: payapi.CurrencyUSD,
		Metadata: payapi.Metadata{"order_id": "o_1"},
	}
	if err := c.Put(ctx, transfer); err != nil {
		t.Fatalf("unexpected error storing transfer: %v", err)
	}

	var got payapi.Transfer
	if err := c.Get(ctx, "transfer", "tr_1", &got); err != nil {
		t.Fatalf("unexpected error loading transfer: %v", err)
	}

	if got.ID != transfer.ID || got.Amount != transfer.Amount {
		t.Errorf("unexpected cached transfer: %+v", got)
	}
	if got.Metadata["order_id"] != "o_1" {
		t.Errorf("expected metadata preserved, got %v", got.Metadata)
	}
}

func TestResourceCacheMiss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	var got payapi.Transfer
	err := c.Get(context.Background(), "transfer", "tr_unknown", &got)
	if !errors.Is(err, cache.ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
}

func TestResourceCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	account := &payapi.Account{ID: "acct_1"}
	if err := c.Put(ctx, account); err != nil {
		t.Fatalf("unexpected error storing account: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	var got payapi.Account
	err := c.Get(ctx, "account", "acct_1", &got)
	if !errors.Is(err, cache.ErrMiss) {
		t.Fatalf("expected ErrMiss after expiry, got %v", err)
	}
}

func TestResourceCacheDelete(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	reversal := &payapi.TransferReversal{ID: "trr_1", Amount: 50}
	if err := c.Put(ctx, reversal); err != nil {
		t.Fatalf("unexpected error storing reversal: %v", err)
	}
	if err := c.Delete(ctx, "transfer_reversal", "trr_1"); err != nil {
		t.Fatalf("unexpected error deleting reversal: %v", err)
	}

	var got payapi.TransferReversal
	err := c.Get(ctx, "transfer_reversal", "trr_1", &got)
	if !errors.Is(err, cache.ErrMiss) {
		t.Fatalf("expected ErrMiss after delete, got %v", err)
	}
}
