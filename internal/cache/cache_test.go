package cache

import (
	"context"
	"net/url"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestKeyIsDeterministic(t *testing.T) {
	first := url.Values{}
	first.Set("range", "LAST_7_DAYS")
	first.Set("compare", "true")

	second := url.Values{}
	second.Set("compare", "true")
	second.Set("range", "LAST_7_DAYS")

	require.Equal(t, Key("campaigns", "5756290882", first), Key("campaigns", "5756290882", second))
	require.Equal(t, "report:campaigns:5756290882:compare=true:range=LAST_7_DAYS", Key("campaigns", "5756290882", first))
}

func TestKeySkipsEmptyValuesAndCustomer(t *testing.T) {
	params := url.Values{}
	params.Set("range", "TODAY")
	params.Set("campaign_id", "")

	require.Equal(t, "report:overview:range=TODAY", Key("overview", "", params))
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemory(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "k", []byte("payload"), 25*time.Millisecond)
	payload, found := store.Get(ctx, "k")
	require.True(t, found)
	require.Equal(t, []byte("payload"), payload)

	time.Sleep(50 * time.Millisecond)
	_, found = store.Get(ctx, "k")
	require.False(t, found)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	store := NewRedis(redis.NewClient(&redis.Options{Addr: mini.Addr()}), zerolog.Nop())
	ctx := context.Background()

	_, found := store.Get(ctx, "missing")
	require.False(t, found)

	store.Set(ctx, "k", []byte("payload"), time.Minute)
	payload, found := store.Get(ctx, "k")
	require.True(t, found)
	require.Equal(t, []byte("payload"), payload)

	mini.FastForward(2 * time.Minute)
	_, found = store.Get(ctx, "k")
	require.False(t, found)
}
