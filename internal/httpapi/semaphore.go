package httpapi

import "context"

// slots bounds how many uploads are analyzed at once. Requests over the
// limit wait for a free slot until their context ends.
type slots struct {
	ch chan struct{}
}

func newSlots(capacity int) *slots {
	if capacity <= 0 {
		capacity = 1
	}
	return &slots{ch: make(chan struct{}, capacity)}
}

func (s *slots) acquire(ctx context.Context) error {
	// Fail fast on a request that is already gone.
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *slots) release() {
	<-s.ch
}

// busy is the number of analyses currently running.
func (s *slots) busy() int {
	return len(s.ch)
}

func (s *slots) capacity() int {
	return cap(s.ch)
}
