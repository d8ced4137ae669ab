package task

import "sync"

// follower queues changes without bound and hands them to out in commit
// order. publish never blocks on it.
type follower struct {
	mu    sync.Mutex
	queue []Change
	wake  chan struct{}
	done  chan struct{}
	out   chan Change
}

func newFollower() *follower {
	f := &follower{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		out:  make(chan Change),
	}
	go f.pump()
	return f
}

func (f *follower) push(ch Change) {
	f.mu.Lock()
	f.queue = append(f.queue, ch)
	f.mu.Unlock()
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *follower) pump() {
	defer close(f.out)
	for {
		f.mu.Lock()
		if len(f.queue) == 0 {
			f.mu.Unlock()
			select {
			case <-f.wake:
				continue
			case <-f.done:
				return
			}
		}
		next := f.queue[0]
		f.queue[0] = Change{}
		f.queue = f.queue[1:]
		f.mu.Unlock()

		select {
		case f.out <- next:
		case <-f.done:
			return
		}
	}
}

// Follow returns a channel that receives every Change in commit order, no
// matter how far the reader falls behind; unread changes queue in memory.
// It is meant for consumers that must not miss anything, such as the
// journal. Stop following with Unsubscribe.
func (s *Store) Follow() chan Change {
	f := newFollower()
	s.subMu.Lock()
	s.followers[f.out] = f
	s.subMu.Unlock()
	return f.out
}
