package pubsub

import (
	"errors"
	"sync"
)

const (
	DefaultPublisherBufSize  = 1
	DefaultSubscriberBufSize = 1
)

var (
	ErrPublisherClosed = errors.New("publisher closed")
)

// Publisher fans each sent message out to every current subscriber. Sending
// never requires subscribers to exist; a subscriber whose buffer is full at
// delivery time is dropped and closed, so a stalled consumer can never block
// the publishing side.
type Publisher[T any] interface {
	SenderCloser[T]
	Subscribe() (ReceiverCloser[T], error)
	SubscribeBufSize(int) (ReceiverCloser[T], error)
}

type publisher[T any] struct {
	mu          sync.Mutex
	ch          Channel[T]
	subscribers map[SenderCloser[T]]struct{}
	fanout      sync.WaitGroup // broadcast goroutine
	pending     sync.WaitGroup // messages accepted but not yet fanned out
	closed      bool
}

func NewPublisher[T any]() Publisher[T] {
	return NewPublisherBufSize[T](DefaultPublisherBufSize)
}

func NewPublisherBufSize[T any](bufSize int) Publisher[T] {
	p := &publisher[T]{
		ch:          NewChannel[T](bufSize),
		subscribers: make(map[SenderCloser[T]]struct{}),
	}
	p.fanout.Add(1)
	go p.run()
	return p
}

func (p *publisher[T]) run() {
	defer p.fanout.Done()
	for msg := range p.ch.Receive() {
		for _, s := range p.snapshot() {
			if ok := s.TrySend(msg); !ok {
				p.removeSubscriber(s)
				s.Close()
			}
		}
		p.pending.Done()
	}
}

// snapshot copies the subscriber set, so fanout doesn't hold the lock that
// Subscribe needs.
func (p *publisher[T]) snapshot() []SenderCloser[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	subscribers := make([]SenderCloser[T], 0, len(p.subscribers))
	for s := range p.subscribers {
		subscribers = append(subscribers, s)
	}
	return subscribers
}

// Send publishes the value to all subscribers, returning false if the
// publisher is closed.
func (p *publisher[T]) Send(msg T) bool {
	p.pending.Add(1)
	if ok := p.ch.Send(msg); !ok {
		p.pending.Done()
		return false
	}
	return true
}

// TrySend is like Send, but fails instead of waiting when the publisher's
// own buffer is full.
func (p *publisher[T]) TrySend(msg T) bool {
	p.pending.Add(1)
	if ok := p.ch.TrySend(msg); !ok {
		p.pending.Done()
		return false
	}
	return true
}

func (p *publisher[T]) Subscribe() (ReceiverCloser[T], error) {
	return p.SubscribeBufSize(DefaultSubscriberBufSize)
}

func (p *publisher[T]) SubscribeBufSize(bufSize int) (ReceiverCloser[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrPublisherClosed
	}
	s := NewChannel[T](bufSize)
	p.subscribers[s] = struct{}{}
	return s, nil
}

func (p *publisher[T]) removeSubscriber(s SenderCloser[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.subscribers, s)
}

// Close idempotently shuts down the publisher, closing all subscribers too.
func (p *publisher[T]) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	// Flush in-flight messages before closing subscribers
	p.ch.Close()
	p.pending.Wait()
	p.fanout.Wait()

	p.mu.Lock()
	subscribers := p.subscribers
	p.subscribers = make(map[SenderCloser[T]]struct{})
	p.mu.Unlock()
	for s := range subscribers {
		s.Close()
	}
}
