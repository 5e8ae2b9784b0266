package tracker

import "sync"

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls further behind misses intermediate values but always receives the
// newest one eventually, which is all the replay contract promises.
const subscriberBuffer = 16

// stream is a broadcast source with last-value replay: every subscriber sees
// the values published after it subscribed, and a new subscriber immediately
// receives the most recent value so it never has to re-derive initial state.
type stream[T any] struct {
	mu    sync.Mutex
	subs  map[int]chan T
	next  int
	last  T
	valid bool
}

func newStream[T any]() *stream[T] {
	return &stream[T]{subs: make(map[int]chan T)}
}

// publish records v as the latest value and delivers it to all subscribers.
// Delivery never blocks so a stalled subscriber cannot stall the core: when a
// subscriber's buffer is full the oldest queued value is dropped to make room
// for v, keeping the newest value deliverable.
func (s *stream[T]) publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = v
	s.valid = true
	for _, ch := range s.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

// subscribe registers a new subscriber and replays the latest value to it.
// The returned cancel function is idempotent and closes the channel.
func (s *stream[T]) subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	ch := make(chan T, subscriberBuffer)
	if s.valid {
		ch <- s.last
	}
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// latest returns the most recently published value, if any.
func (s *stream[T]) latest() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.valid
}

// shutdown closes all subscriber channels.
func (s *stream[T]) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
