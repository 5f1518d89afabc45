package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/matzehuels/autotype/pkg/record"
)

func TestHubLatest(t *testing.T) {
	h := NewHub()
	if h.Latest() != nil {
		t.Fatal("Latest() should be nil before the first publish")
	}
	if err := h.Publish(context.Background(), record.Of("a", "x")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := string(h.Latest()); got != `{"a":"x"}` {
		t.Errorf("Latest() = %s", got)
	}
}

func TestHubSubscribe(t *testing.T) {
	ctx := context.Background()
	h := NewHub()
	_ = h.Publish(ctx, record.Of("a", "1"))

	id, ch, cancel := h.Subscribe(ctx)
	if id == "" {
		t.Error("subscriber id should not be empty")
	}
	if h.Subscribers() != 1 {
		t.Errorf("Subscribers() = %d, want 1", h.Subscribers())
	}
	if got := string(<-ch); got != `{"a":"1"}` {
		t.Errorf("first snapshot = %s, want the latest one", got)
	}

	_ = h.Publish(ctx, record.Of("a", "12"))
	if got := string(<-ch); got != `{"a":"12"}` {
		t.Errorf("snapshot = %s", got)
	}

	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}
	if h.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", h.Subscribers())
	}
	if err := h.Publish(ctx, record.Of("a", "123")); err != nil {
		t.Errorf("Publish after cancel: %v", err)
	}
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	ctx := context.Background()
	h := NewHub(WithBuffer(2))
	_, ch, cancel := h.Subscribe(ctx)
	defer cancel()

	for _, s := range []string{"a", "ab", "abc", "abcd"} {
		if err := h.Publish(ctx, record.Of("t", s)); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	if got := string(<-ch); got != `{"t":"a"}` {
		t.Errorf("first = %s", got)
	}
	if got := string(<-ch); got != `{"t":"ab"}` {
		t.Errorf("second = %s", got)
	}
	select {
	case got := <-ch:
		t.Errorf("expected drops, got %s", got)
	default:
	}
	if got := string(h.Latest()); got != `{"t":"abcd"}` {
		t.Errorf("Latest() = %s", got)
	}
}

func TestMulti(t *testing.T) {
	var calls []string
	ok := Func(func(context.Context, *record.Record) error {
		calls = append(calls, "ok")
		return nil
	})
	boom := errors.New("boom")
	bad := Func(func(context.Context, *record.Record) error {
		calls = append(calls, "bad")
		return boom
	})

	err := Multi{bad, nil, ok}.Publish(context.Background(), record.Of())
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if len(calls) != 2 || calls[0] != "bad" || calls[1] != "ok" {
		t.Errorf("calls = %v", calls)
	}
	if err := Discard.Publish(context.Background(), record.Of()); err != nil {
		t.Errorf("Discard: %v", err)
	}
}
