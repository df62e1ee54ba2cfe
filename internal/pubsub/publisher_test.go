package pubsub

import (
	"sync"
	"testing"
	"time"

	assert_ "github.com/stretchr/testify/assert"
)

var _ Publisher[int] = &publisher[int]{}

func TestPublisher(t *testing.T) {
	assert := assert_.New(t)
	pub := NewPublisher[int]().(*publisher[int])

	// Sending to a publisher with no subscribers should just succeed
	assert.True(pub.Send(1))
	assert.True(pub.Send(2))
	pub.pending.Wait() // Make sure all messages are handled before proceeding

	// A single subscriber should get sent values, and only values sent after
	// it subscribed
	s1, err := pub.Subscribe()
	assert.Nil(err)
	select {
	case <-s1.Receive():
		assert.Fail("subscriber should be waiting")
	default:
	}
	assert.True(pub.Send(3))
	assert.Equal(3, <-s1.Receive())
	pub.pending.Wait()

	// With two subscribers, both should get the same value
	s2, err := pub.Subscribe()
	assert.Nil(err)
	var wg sync.WaitGroup
	var v1, v2 int
	wg.Add(2)
	go func() { v1 = <-s1.Receive(); wg.Done() }()
	go func() { v2 = <-s2.Receive(); wg.Done() }()
	assert.True(pub.Send(4))
	wg.Wait()
	assert.Equal(4, v1)
	assert.Equal(4, v2)
	pub.pending.Wait()

	// Closing one subscriber should not affect the other
	s1.Close()
	assert.True(pub.Send(5))
	assert.Equal(5, <-s2.Receive())
	s1.Close() // Closing should be idempotent
	pub.pending.Wait()

	// Once the publisher is closed, subscribing or sending should fail, and
	// remaining subscribers should be closed
	pub.Close()
	_, err = pub.Subscribe()
	assert.Equal(ErrPublisherClosed, err)
	assert.False(pub.Send(6))
	_, ok := <-s2.Receive()
	assert.False(ok, "expected subscriber to be closed by publisher")
	pub.Close() // Closing should be idempotent
}

func TestPublisherDropsStalledSubscriber(t *testing.T) {
	assert := assert_.New(t)
	pub := NewPublisher[int]().(*publisher[int])

	stalled, err := pub.Subscribe()
	assert.Nil(err)
	live, err := pub.SubscribeBufSize(16)
	assert.Nil(err)

	// The stalled subscriber never receives; once its buffer is full it must
	// be dropped rather than block publishing
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			assert.True(pub.Send(i))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		assert.FailNow("publishing blocked on a subscriber that stopped accepting")
	}
	pub.pending.Wait()

	// The live subscriber saw everything
	pub.Close()
	var got []int
	for v := range live.Receive() {
		got = append(got, v)
	}
	assert.Len(got, 10)

	// The stalled one was closed after being dropped
	for range stalled.Receive() {
	}
}

func TestChannelSendAfterClose(t *testing.T) {
	assert := assert_.New(t)
	c := NewChannel[string](1)
	assert.True(c.Send("a"))
	c.Close()
	assert.False(c.Send("b"))
	assert.Equal("a", <-c.Receive())
	_, ok := <-c.Receive()
	assert.False(ok)
	c.Close() // idempotent
}

func TestChannelTrySend(t *testing.T) {
	assert := assert_.New(t)
	c := NewChannel[string](1)
	assert.True(c.TrySend("a"))
	assert.False(c.TrySend("b"), "a full buffer should fail immediately")
	assert.Equal("a", <-c.Receive())
	assert.True(c.TrySend("c"))
	c.Close()
	assert.False(c.TrySend("d"))
}
