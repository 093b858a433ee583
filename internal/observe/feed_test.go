package observe_test

import (
	"testing"

	"asempv/internal/observe"
)

func drain[T any](ch <-chan T) []T {
	var out []T
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, v)
		default:
			return out
		}
	}
}

func TestFeed_ReplaysLatestToNewSubscriber(t *testing.T) {
	var f observe.Feed[int]
	f.Publish(1)
	f.Publish(2)

	sub := f.Subscribe(4)
	defer sub.Cancel()

	if got := drain(sub.C); len(got) != 1 || got[0] != 2 {
		t.Fatalf("replay = %v, want [2]", got)
	}
}

func TestFeed_DeliversInOrder(t *testing.T) {
	var f observe.Feed[string]
	sub := f.Subscribe(8)
	defer sub.Cancel()

	for _, v := range []string{"a", "b", "c"} {
		f.Publish(v)
	}
	got := drain(sub.C)
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("got %v", got)
	}
}

func TestFeed_FullBufferKeepsLatest(t *testing.T) {
	var f observe.Feed[int]
	sub := f.Subscribe(2)
	defer sub.Cancel()

	for i := 1; i <= 10; i++ {
		f.Publish(i)
	}
	got := drain(sub.C)
	if len(got) != 2 || got[1] != 10 {
		t.Fatalf("got %v, want the last two values", got)
	}
}

func TestFeed_CloseEndsSubscriptions(t *testing.T) {
	var f observe.Feed[int]
	sub := f.Subscribe(1)
	f.Close()
	f.Publish(3)

	if _, ok := <-sub.C; ok {
		t.Fatal("expected closed channel")
	}
	late := f.Subscribe(1)
	if _, ok := <-late.C; ok {
		t.Fatal("subscription to closed feed should be closed")
	}
	sub.Cancel()
}

func TestSubscription_Cancel(t *testing.T) {
	var f observe.Feed[int]
	sub := f.Subscribe(1)
	sub.Cancel()
	sub.Cancel()
	f.Publish(1)
	if _, ok := <-sub.C; ok {
		t.Fatal("expected closed channel after cancel")
	}
	if v, ok := f.Latest(); !ok || v != 1 {
		t.Fatalf("latest = %v %v", v, ok)
	}
}
