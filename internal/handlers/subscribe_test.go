package handlers

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/piciu1221/firesignal/internal/notifier"
)

func newSubscribeServer(t *testing.T) (*httptest.Server, *notifier.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := notifier.NewRegistry()
	h := &SubscribeHandler{Registry: registry}

	r := gin.New()
	r.GET("/api/subscribe/:username", h.Subscribe)
	r.GET("/api/ws/:username", h.WebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv, registry
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestSubscribeDeliversPublishedAlarm(t *testing.T) {
	srv, registry := newSubscribeServer(t)

	resp, err := http.Get(srv.URL + "/api/subscribe/mdrogosz")
	if err != nil {
		t.Fatalf("subscribe request failed: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("content type = %q, want text/event-stream", ct)
	}

	waitFor(t, "channel registration", func() bool { return registry.Active("mdrogosz") })

	registry.Publish("mdrogosz", notifier.AlarmMessage{
		AlarmID:       77,
		FirefighterID: 3,
		City:          "Stargard",
		Street:        "Wyszynskiego 10",
		Description:   "Flames visible from the upper floors.",
	})

	scanner := bufio.NewScanner(resp.Body)
	var data string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "data:") && strings.Contains(line, "Id:") {
			data = line
			break
		}
	}

	if data == "" {
		t.Fatalf("no alarm event received: %v", scanner.Err())
	}
	for _, want := range []string{"Id: 77", "City: Stargard", "Street: Wyszynskiego 10"} {
		if !strings.Contains(data, want) {
			t.Errorf("event %q missing %q", data, want)
		}
	}
}

func TestSubscribeUnregistersOnDisconnect(t *testing.T) {
	srv, registry := newSubscribeServer(t)

	resp, err := http.Get(srv.URL + "/api/subscribe/bnowak")
	if err != nil {
		t.Fatalf("subscribe request failed: %v", err)
	}

	waitFor(t, "channel registration", func() bool { return registry.Active("bnowak") })

	resp.Body.Close()

	waitFor(t, "unregister after disconnect", func() bool { return !registry.Active("bnowak") })
}

func TestWebSocketDeliversPublishedAlarm(t *testing.T) {
	srv, registry := newSubscribeServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/akowalska"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	defer conn.Close()

	waitFor(t, "channel registration", func() bool { return registry.Active("akowalska") })

	sent := notifier.AlarmMessage{
		AlarmID:       5,
		FirefighterID: 9,
		City:          "Stargard",
		Street:        "Wyszynskiego 10",
		Description:   "Smoke reported.",
	}
	registry.Publish("akowalska", sent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var got notifier.AlarmMessage
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("reading pushed alarm failed: %v", err)
	}
	if got != sent {
		t.Errorf("received %+v, want %+v", got, sent)
	}

	conn.Close()

	waitFor(t, "unregister after disconnect", func() bool { return !registry.Active("akowalska") })
}
