package messaging

import (
	"sync"

	"github.com/9triver/ledgerkit/protocol"
)

// Future is the eventual reply to one sent request. It is resolved exactly
// once, either with the reply envelope or with an error when the connection
// dies first.
type Future struct {
	done chan struct{}
	once sync.Once
	msg  *protocol.Message
	err  error
}

// NewFuture is exported so alternative Connection implementations can mint
// futures for their own demultiplexing.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolve completes the future with a reply. Later calls to Resolve or Fail
// are no-ops.
func (f *Future) Resolve(msg *protocol.Message) {
	f.once.Do(func() {
		f.msg = msg
		close(f.done)
	})
}

// Fail completes the future with an error.
func (f *Future) Fail(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Result blocks until the future is complete.
func (f *Future) Result() (*protocol.Message, error) {
	<-f.done
	return f.msg, f.err
}
