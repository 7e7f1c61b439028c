package publish

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metorial/homewatch/internal/metrics"
	"github.com/metorial/homewatch/internal/store"
)

type published struct {
	channel string
	message []byte
}

type fakeRedis struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "publish", channel, message)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.sent = append(f.sent, published{channel: channel, message: message.([]byte)})
	cmd.SetVal(1)
	return cmd
}

func (f *fakeRedis) messages() []published {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]published{}, f.sent...)
}

func TestPublisherForwardsChanges(t *testing.T) {
	fake := &fakeRedis{}
	p := New(fake, "", nil)
	st := store.NewSeeded()
	st.Subscribe(p.Listen)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	st.MarkResolved("2")
	st.ToggleAutomation("4")

	require.Eventually(t, func() bool { return len(fake.messages()) == 2 }, time.Second, 5*time.Millisecond)

	msgs := fake.messages()
	assert.Equal(t, DefaultChannel, msgs[0].channel)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(msgs[0].message, &event))
	assert.Equal(t, "alerts", event["type"])
	require.NoError(t, json.Unmarshal(msgs[1].message, &event))
	assert.Equal(t, "automations", event["type"])
}

func TestPublisherCountsFailures(t *testing.T) {
	fake := &fakeRedis{err: errors.New("connection refused")}
	p := New(fake, "custom", nil)
	before := testutil.ToFloat64(metrics.PublishedChanges.WithLabelValues("error"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	st := store.NewSeeded()
	st.Subscribe(p.Listen)
	st.MarkRead("1")

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.PublishedChanges.WithLabelValues("error")) == before+1
	}, time.Second, 5*time.Millisecond)
}

func TestListenDropsWhenQueueFull(t *testing.T) {
	p := New(&fakeRedis{}, "", nil)
	st := store.NewSeeded()
	st.Subscribe(p.Listen)
	before := testutil.ToFloat64(metrics.PublishedChanges.WithLabelValues("dropped"))

	for i := 0; i < queueSize+3; i++ {
		st.MarkRead("1")
	}

	assert.Len(t, p.queue, queueSize)
	assert.Equal(t, before+3, testutil.ToFloat64(metrics.PublishedChanges.WithLabelValues("dropped")))
}
