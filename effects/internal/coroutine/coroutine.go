package coroutine

import (
	"runtime"
)

type status int

const (
	created status = iota
	suspended
	finished
)

type resumeMessage[S any] struct {
	value S
	kill  bool
}

// Coroutine runs a body on its own goroutine and hands control back and forth
// with the caller. Exactly one side runs at any time: the caller blocks in
// Resume while the body runs, and the body blocks in suspend while the caller
// runs.
//
// The body's suspend reports false when it is called after the coroutine
// finished, e.g. from a goroutine the body left behind. It never blocks then.
//
// IMPORTANT:
// A Coroutine is driven by a single caller goroutine.
// Resume and Kill must not be called concurrently.
type Coroutine[Y, S, R any] struct {
	body     func(suspend func(Y) (S, bool)) R
	yieldCh  chan Y
	resumeCh chan resumeMessage[S]
	doneCh   chan struct{}
	status   status
	killed   bool

	result     R
	returned   bool
	panicValue any
	panicked   bool
}

// New creates a coroutine for body. Nothing runs until the first Resume.
func New[Y, S, R any](body func(suspend func(Y) (S, bool)) R) *Coroutine[Y, S, R] {
	return &Coroutine[Y, S, R]{
		body:     body,
		yieldCh:  make(chan Y),
		resumeCh: make(chan resumeMessage[S]),
		doneCh:   make(chan struct{}),
	}
}

// Resume runs the body until it suspends or finishes.
//
// The first call starts the body and ignores in. Later calls deliver in as
// the return value of the pending suspend. Returns the suspended value and
// false, or the zero value and true once the body has finished.
func (c *Coroutine[Y, S, R]) Resume(in S) (Y, bool) {
	var zero Y
	switch c.status {
	case finished:
		return zero, true
	case created:
		c.start()
	case suspended:
		c.resumeCh <- resumeMessage[S]{value: in}
	}

	select {
	case y := <-c.yieldCh:
		c.status = suspended
		return y, false
	case <-c.doneCh:
		c.status = finished
		return zero, true
	}
}

// Kill terminates a suspended body at its suspension point.
// The body's deferred calls run; no other code of the body does.
// Kill blocks until the body goroutine has exited.
func (c *Coroutine[Y, S, R]) Kill() {
	switch c.status {
	case created:
		c.status = finished
		close(c.doneCh)
	case suspended:
		c.killed = true
		c.resumeCh <- resumeMessage[S]{kill: true}
		<-c.doneCh
		c.status = finished
	}
}

// Result returns the body's return value. Valid once Resume reported done.
func (c *Coroutine[Y, S, R]) Result() R {
	return c.result
}

// Panicked reports the value the body panicked with, if any.
func (c *Coroutine[Y, S, R]) Panicked() (any, bool) {
	return c.panicValue, c.panicked
}

// Returned reports whether the body ran to its return statement.
// It is false if the body panicked, was killed or called runtime.Goexit.
func (c *Coroutine[Y, S, R]) Returned() bool {
	return c.returned
}

// Killed reports whether the body was terminated by Kill.
func (c *Coroutine[Y, S, R]) Killed() bool {
	return c.killed
}

func (c *Coroutine[Y, S, R]) start() {
	ready := make(chan struct{})
	go func() {
		defer close(c.doneCh)
		defer func() {
			if r := recover(); r != nil {
				c.panicValue = r
				c.panicked = true
			}
		}()
		close(ready)
		c.result = c.body(c.suspend)
		c.returned = true
	}()
	<-ready
}

func (c *Coroutine[Y, S, R]) suspend(y Y) (S, bool) {
	var zero S
	if c.killed {
		// suspend called from a deferred function after Kill
		runtime.Goexit()
	}
	select {
	case c.yieldCh <- y:
	case <-c.doneCh:
		return zero, false
	}
	msg := <-c.resumeCh
	if msg.kill {
		runtime.Goexit()
	}
	return msg.value, true
}
