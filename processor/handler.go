// Package processor implements the client side of the validator protocol:
// it connects to a validator endpoint, registers the transaction families it
// can execute, and services process requests by routing each one to a
// matching handler, surviving transport disconnects by reconnecting and
// re-registering.
package processor

import (
	"github.com/9triver/ledgerkit/protocol"
)

// TransactionHandler is one pluggable transaction-family capability. All
// handlers are added before Start and never change while the processor runs.
type TransactionHandler interface {
	// FamilyName is the transaction family this handler executes.
	FamilyName() string

	// FamilyVersions lists every family version the handler supports. Each
	// version is registered with the validator separately.
	FamilyVersions() []string

	// Namespaces lists the state address prefixes the handler reads and
	// writes. They are declared at registration; this layer does not
	// enforce them.
	Namespaces() []string

	// Apply executes one transaction. Returning *InvalidTransactionError
	// rejects the transaction as a business outcome; any other error is
	// reported to the validator as an internal failure.
	Apply(request *protocol.ProcessRequest, context *Context) error
}

// InvalidTransactionError rejects a transaction without implying anything is
// wrong with the processor. The message travels back to the validator
// verbatim.
type InvalidTransactionError struct {
	Msg string
}

func (e *InvalidTransactionError) Error() string {
	return e.Msg
}

// InternalError reports a fault inside the handler or its collaborators.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return e.Msg
}
