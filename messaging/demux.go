package messaging

import (
	"sync"

	"github.com/9triver/ledgerkit/protocol"
)

// inboundDepth bounds how far the transport may read ahead of the consumer.
// Replies to pending futures are resolved before queueing, so a handler
// waiting on a state operation is never starved by a full queue.
const inboundDepth = 128

type recvItem struct {
	msg *protocol.Message
	err error
}

// demux matches inbound envelopes against pending futures by correlation id
// and hands everything else to the receiver. It is shared by all transports;
// only the transport's run loop may call dispatch, deliverError, and close.
type demux struct {
	mu      sync.Mutex
	pending map[string]*Future
	closed  bool
	inbound chan recvItem
}

func newDemux() *demux {
	return &demux{
		pending: make(map[string]*Future),
		inbound: make(chan recvItem, inboundDepth),
	}
}

// expect registers a correlation id before the request is sent, so the reply
// cannot race past the registration.
func (d *demux) expect(correlationID string) *Future {
	fut := NewFuture()
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		fut.Fail(ErrDisconnected)
		return fut
	}
	d.pending[correlationID] = fut
	d.mu.Unlock()
	return fut
}

// forget drops a registration whose send failed.
func (d *demux) forget(correlationID string) {
	d.mu.Lock()
	delete(d.pending, correlationID)
	d.mu.Unlock()
}

func (d *demux) dispatch(msg *protocol.Message) {
	d.mu.Lock()
	fut, ok := d.pending[msg.CorrelationID]
	if ok {
		delete(d.pending, msg.CorrelationID)
	}
	d.mu.Unlock()

	if ok {
		fut.Resolve(msg)
		return
	}
	d.inbound <- recvItem{msg: msg}
}

// deliverError surfaces a per-message fault (e.g. an undecodable frame) to
// the receiver without tearing the connection down.
func (d *demux) deliverError(err error) {
	d.inbound <- recvItem{err: err}
}

// close fails every pending future and ends the receiver stream.
func (d *demux) close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	pending := d.pending
	d.pending = make(map[string]*Future)
	d.mu.Unlock()

	for _, fut := range pending {
		fut.Fail(ErrDisconnected)
	}
	close(d.inbound)
}

func (d *demux) recv() (*protocol.Message, error) {
	item, ok := <-d.inbound
	if !ok {
		return nil, ErrDisconnected
	}
	if item.err != nil {
		return nil, item.err
	}
	return item.msg, nil
}
