// Package messaging provides the validator-facing transport: a connection
// bound to one endpoint, senders that pair outbound requests with their
// replies by correlation id, and a receiver for unsolicited inbound messages.
package messaging

import (
	"errors"

	"github.com/9triver/ledgerkit/protocol"
)

// ErrDisconnected reports that the underlying transport is gone. The caller
// is expected to discard the connection and dial a fresh one.
var ErrDisconnected = errors.New("messaging: disconnected")

// ErrTimeout reports that an outbound message could not be handed to the
// transport in time. The message is considered lost; the connection stays up.
var ErrTimeout = errors.New("messaging: send timed out")

// Sender is the outbound half of a connection. Senders are cheap handles over
// shared connection state; a request context may carry its own copy without
// disturbing the dispatch loop's reply path. Closing any handle tears down
// the whole connection.
type Sender interface {
	// Send transmits a request envelope and returns a Future that resolves
	// when the reply carrying the same correlation id arrives.
	Send(t protocol.MessageType, correlationID string, content []byte) (*Future, error)

	// Reply transmits a response envelope. A returned error is one of
	// ErrDisconnected, ErrTimeout, or an unclassified transport failure.
	Reply(t protocol.MessageType, correlationID string, content []byte) error

	Close()
}

// Receiver yields inbound envelopes that did not match a pending Future.
// Recv blocks; ErrDisconnected means the connection is gone for good, any
// other error is a per-message fault and the next Recv may succeed.
type Receiver interface {
	Recv() (*protocol.Message, error)
}

// Connection is one live binding to a validator endpoint.
type Connection interface {
	// Create returns the sender/receiver pair for this connection. The pair
	// shares the connection; Create may be called once per connection.
	Create() (Sender, Receiver)

	Close()
}
