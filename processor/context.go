package processor

import (
	"fmt"

	"github.com/9triver/ledgerkit/internal/util"
	"github.com/9triver/ledgerkit/messaging"
	"github.com/9triver/ledgerkit/protocol"
)

// Context is the per-request handle a handler uses for state access during
// Apply. It carries the request's state-context id and its own copy of the
// connection's sender, so handler-initiated traffic shares the connection
// without touching the dispatch loop's reply.
type Context struct {
	contextID string
	sender    messaging.Sender
}

func NewContext(contextID string, sender messaging.Sender) *Context {
	return &Context{contextID: contextID, sender: sender}
}

// ContextID names the validator-side state context this request runs in.
func (c *Context) ContextID() string {
	return c.contextID
}

// GetState reads the given addresses. Addresses with no value set are absent
// from the returned map.
func (c *Context) GetState(addresses []string) (map[string][]byte, error) {
	req := &protocol.StateGetRequest{ContextID: c.contextID, Addresses: addresses}
	data, err := req.Marshal()
	if err != nil {
		return nil, err
	}
	ack, err := c.roundTrip(protocol.MessageTypeTpStateGetRequest, protocol.MessageTypeTpStateGetResponse, data)
	if err != nil {
		return nil, err
	}

	resp := &protocol.StateGetResponse{}
	if err := resp.Unmarshal(ack.Content); err != nil {
		return nil, err
	}
	if resp.Status != protocol.StateStatusOK {
		return nil, &InternalError{Msg: fmt.Sprintf("state get failed with status %d", resp.Status)}
	}

	values := make(map[string][]byte, len(resp.Entries))
	for _, entry := range resp.Entries {
		if len(entry.Data) == 0 {
			continue
		}
		values[entry.Address] = entry.Data
	}
	return values, nil
}

// SetState writes the given entries and returns the addresses the validator
// accepted.
func (c *Context) SetState(entries map[string][]byte) ([]string, error) {
	req := &protocol.StateSetRequest{ContextID: c.contextID}
	for address, value := range entries {
		req.Entries = append(req.Entries, &protocol.StateEntry{Address: address, Data: value})
	}
	data, err := req.Marshal()
	if err != nil {
		return nil, err
	}
	ack, err := c.roundTrip(protocol.MessageTypeTpStateSetRequest, protocol.MessageTypeTpStateSetResponse, data)
	if err != nil {
		return nil, err
	}

	resp := &protocol.StateSetResponse{}
	if err := resp.Unmarshal(ack.Content); err != nil {
		return nil, err
	}
	if resp.Status != protocol.StateStatusOK {
		return nil, &InternalError{Msg: fmt.Sprintf("state set failed with status %d", resp.Status)}
	}
	return resp.Addresses, nil
}

// DeleteState removes the given addresses and returns those actually
// deleted.
func (c *Context) DeleteState(addresses []string) ([]string, error) {
	req := &protocol.StateDeleteRequest{ContextID: c.contextID, Addresses: addresses}
	data, err := req.Marshal()
	if err != nil {
		return nil, err
	}
	ack, err := c.roundTrip(protocol.MessageTypeTpStateDeleteRequest, protocol.MessageTypeTpStateDeleteResponse, data)
	if err != nil {
		return nil, err
	}

	resp := &protocol.StateDeleteResponse{}
	if err := resp.Unmarshal(ack.Content); err != nil {
		return nil, err
	}
	if resp.Status != protocol.StateStatusOK {
		return nil, &InternalError{Msg: fmt.Sprintf("state delete failed with status %d", resp.Status)}
	}
	return resp.Addresses, nil
}

func (c *Context) roundTrip(reqType, respType protocol.MessageType, content []byte) (*protocol.Message, error) {
	fut, err := c.sender.Send(reqType, util.GenCorrelationID(), content)
	if err != nil {
		return nil, err
	}
	ack, err := fut.Result()
	if err != nil {
		return nil, err
	}
	if ack.Type != respType {
		return nil, &InternalError{Msg: fmt.Sprintf("unexpected reply %s to %s", ack.Type, reqType)}
	}
	return ack, nil
}
