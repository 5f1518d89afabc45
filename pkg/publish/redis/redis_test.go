package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/matzehuels/autotype/pkg/errors"
	"github.com/matzehuels/autotype/pkg/publish"
	"github.com/matzehuels/autotype/pkg/publish/redis"
	"github.com/matzehuels/autotype/pkg/record"
)

var _ publish.Publisher = (*redis.Publisher)(nil)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *backend.Client, *redis.Publisher) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client, redis.NewFromClient(client, opts...)
}

func TestPublishStoresLatest(t *testing.T) {
	mr, _, p := setup(t)
	ctx := context.Background()

	require.NoError(t, p.Ping(ctx))
	require.NoError(t, p.Publish(ctx, record.Of("name", "Fr")))
	require.NoError(t, p.Publish(ctx, record.Of("name", "Fra")))

	got, err := mr.Get(redis.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Fra"}`, got)

	latest, err := p.Latest(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Fra"}`, string(latest))
}

func TestPublishBroadcasts(t *testing.T) {
	_, client, p := setup(t, redis.WithChannel("resume:live"))
	ctx := context.Background()

	sub := client.Subscribe(ctx, "resume:live")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, p.Publish(ctx, record.Of("a", "x")))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "resume:live", msg.Channel)
	assert.Equal(t, `{"a":"x"}`, msg.Payload)
}

func TestTTL(t *testing.T) {
	mr, _, p := setup(t, redis.WithKey("custom:key"), redis.WithTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, p.Publish(ctx, record.Of("a", "x")))
	assert.True(t, mr.Exists("custom:key"))
	assert.Equal(t, "custom:key", p.Key())

	mr.FastForward(2 * time.Second)

	_, err := p.Latest(ctx)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ErrCodeNotFound))
}

func TestLatestMissing(t *testing.T) {
	_, _, p := setup(t)
	_, err := p.Latest(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeNotFound, apperr.GetCode(err))
}

func TestPublishServerDown(t *testing.T) {
	mr, _, p := setup(t)
	mr.Close()

	err := p.Publish(context.Background(), record.Of("a", "x"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ErrCodeNetwork))
}
