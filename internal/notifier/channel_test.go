package notifier

import (
	"strings"
	"sync"
	"testing"
)

func TestSendAfterCloseDropsSilently(t *testing.T) {
	ch := NewChannel()
	ch.Close()

	if ch.Send(AlarmMessage{AlarmID: 1}) {
		t.Fatal("send on a closed channel must report a drop")
	}
}

func TestSendDropsWhenBufferFull(t *testing.T) {
	ch := NewChannel()

	for i := 0; i < channelBuffer; i++ {
		if !ch.Send(AlarmMessage{AlarmID: uint(i)}) {
			t.Fatalf("send %d should fit in the buffer", i)
		}
	}

	// One more must drop instead of blocking.
	if ch.Send(AlarmMessage{AlarmID: 999}) {
		t.Fatal("send into a full buffer must drop")
	}
}

func TestCloseFiresCallbackExactlyOnce(t *testing.T) {
	ch := NewChannel()

	var mu sync.Mutex
	calls := 0
	ch.OnClose(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch.Close()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("close callback fired %d times, want 1", calls)
	}
}

func TestOnCloseAfterCloseRunsImmediately(t *testing.T) {
	ch := NewChannel()
	ch.Close()

	called := false
	ch.OnClose(func() { called = true })

	if !called {
		t.Fatal("callback registered after close must still run")
	}
}

func TestDoneSignalsClose(t *testing.T) {
	ch := NewChannel()

	select {
	case <-ch.Done():
		t.Fatal("done must not be signaled while open")
	default:
	}

	ch.Close()

	select {
	case <-ch.Done():
	default:
		t.Fatal("done must be signaled after close")
	}
}

func TestMessageWireFormat(t *testing.T) {
	msg := AlarmMessage{
		AlarmID:       77,
		FirefighterID: 12,
		City:          "Stargard",
		Street:        "Wyszynskiego 10",
		Description:   "Flames visible from the upper floors.",
	}

	s := msg.String()
	for _, want := range []string{
		"Id: 77",
		"FirefighterId: 12",
		"City: Stargard",
		"Street: Wyszynskiego 10",
		"Description: Flames visible from the upper floors.",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("formatted message %q missing %q", s, want)
		}
	}
}
