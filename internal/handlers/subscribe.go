package handlers

import (
	"io"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/piciu1221/firesignal/internal/notifier"
)

const heartbeatPeriod = 30 * time.Second

// SubscribeHandler owns the push transports. Both the SSE and the WebSocket
// endpoint register a channel in the same registry, so a user has at most one
// live session regardless of transport.
type SubscribeHandler struct {
	Registry *notifier.Registry
}

// Subscribe streams alarm pushes to the client as server-sent events until
// the client disconnects or a newer session supersedes this one.
func (h *SubscribeHandler) Subscribe(ctx *gin.Context) {
	username := ctx.Param("username")

	ch := notifier.NewChannel()
	h.Registry.Register(username, ch)
	ch.OnClose(func() {
		h.Registry.Unregister(username, ch)
		log.Printf("SSE connection ended for user %s", username)
	})
	defer ch.Close()

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")
	ctx.Writer.Header().Set("X-Accel-Buffering", "no")

	// Flush an opening event right away so the client sees the stream as
	// established instead of waiting for the first alarm.
	ctx.SSEvent("connected", username)
	ctx.Writer.Flush()

	log.Printf("SSE connection opened for user %s", username)

	heartbeat := time.NewTicker(heartbeatPeriod)
	defer heartbeat.Stop()

	clientGone := ctx.Request.Context().Done()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case <-ch.Done():
			return false
		case msg := <-ch.Messages():
			ctx.SSEvent("alarm", msg.String())
			return true
		case <-heartbeat.C:
			// Keeps proxies from reaping an idle stream.
			ctx.SSEvent("heartbeat", time.Now().Unix())
			return true
		}
	})
}
