package objectstore

import "context"

// Pending is the result of a queued write.
type Pending struct {
	done chan struct{}
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Resolved returns a Pending that is already complete with err.
func Resolved(err error) *Pending {
	p := newPending()
	p.resolve(err)
	return p
}

func (p *Pending) resolve(err error) {
	p.err = err
	close(p.done)
}

// Done is closed once the write has committed or failed.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the write completes or ctx ends. A write abandoned by
// ctx may still commit later.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Then returns a Pending that resolves after p with f applied to its error.
func (p *Pending) Then(f func(error) error) *Pending {
	next := newPending()
	go func() {
		<-p.done
		next.resolve(f(p.err))
	}()
	return next
}
