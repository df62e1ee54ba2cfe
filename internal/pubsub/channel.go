package pubsub

import (
	"sync"
)

type Sender[T any] interface {
	Send(T) bool
	// TrySend is like Send, but fails instead of waiting when the channel
	// cannot accept the message right now.
	TrySend(T) bool
}

type Receiver[T any] interface {
	Receive() <-chan T
}

type Closer interface {
	Close()
}

type SenderCloser[T any] interface {
	Sender[T]
	Closer
}

type ReceiverCloser[T any] interface {
	Receiver[T]
	Closer
}

type Channel[T any] interface {
	Sender[T]
	Receiver[T]
	Closer
}

// channel wraps a primitive `chan` so that Send and Close are safe to call
// concurrently and Close is idempotent.
type channel[T any] struct {
	mu      sync.RWMutex
	ch      chan T
	done    chan struct{}
	closed  bool
	sending sync.WaitGroup
}

// NewChannel creates a new Channel with the given buffer size.
func NewChannel[T any](bufSize int) Channel[T] {
	return &channel[T]{
		ch:   make(chan T, bufSize),
		done: make(chan struct{}),
	}
}

func (c *channel[T]) Receive() <-chan T {
	return c.ch
}

// Send attempts to deliver a message, returning false if the channel is (or
// becomes) closed.
func (c *channel[T]) Send(msg T) bool {
	// Either the send is never attempted, or Close() will wait for it to finish
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return false
	}
	c.sending.Add(1)
	defer c.sending.Done()
	c.mu.RUnlock()

	select {
	case c.ch <- msg:
		return true
	case <-c.done:
		return false
	}
}

// TrySend delivers the message only if buffer space is available, returning
// false on a full or closed channel.
func (c *channel[T]) TrySend(msg T) bool {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return false
	}
	c.sending.Add(1)
	defer c.sending.Done()
	c.mu.RUnlock()

	select {
	case c.ch <- msg:
		return true
	default:
		return false
	}
}

// Close idempotently ends the channel; all current and future Send calls fail.
func (c *channel[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	// Release any blocked senders, wait for them, then notify receivers
	close(c.done)
	c.sending.Wait()
	close(c.ch)
}
