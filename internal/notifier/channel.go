package notifier

import "sync"

const channelBuffer = 16

// Channel represents one live push connection to one client session. Messages
// are handed to the transport through Messages; Send never blocks the caller.
type Channel struct {
	msgs chan AlarmMessage
	done chan struct{}

	mu      sync.Mutex
	closed  bool
	onClose func()
}

// NewChannel creates an open channel with a small send buffer.
func NewChannel() *Channel {
	return &Channel{
		msgs: make(chan AlarmMessage, channelBuffer),
		done: make(chan struct{}),
	}
}

// Send enqueues msg for delivery. It reports false when the channel is closed
// or the buffer is full; a slow or gone client never stalls the sender.
func (c *Channel) Send(msg AlarmMessage) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.msgs <- msg:
		return true
	default:
		return false
	}
}

// Messages returns the stream the transport drains and writes to the client.
func (c *Channel) Messages() <-chan AlarmMessage {
	return c.msgs
}

// Done is closed when the channel is closed.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// OnClose registers the single teardown callback. If the channel is already
// closed the callback runs immediately, so registration order cannot lose the
// unregister trigger.
func (c *Channel) OnClose(fn func()) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		fn()
		return
	}
	c.onClose = fn
	c.mu.Unlock()
}

// Close transitions the channel to its terminal state and fires the OnClose
// callback. Safe to call from any goroutine, any number of times; only the
// first call has an effect.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	fn := c.onClose
	close(c.done)
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}
