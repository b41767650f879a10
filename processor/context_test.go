package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/9triver/ledgerkit/messaging"
	"github.com/9triver/ledgerkit/protocol"
)

func stateAck(t *testing.T, respType protocol.MessageType, body interface{ Marshal() ([]byte, error) }) func(env sentEnvelope) *protocol.Message {
	t.Helper()
	return func(env sentEnvelope) *protocol.Message {
		content, err := body.Marshal()
		require.NoError(t, err)
		return &protocol.Message{
			Type:          respType,
			CorrelationID: env.correlationID,
			Content:       content,
		}
	}
}

func TestContextGetState(t *testing.T) {
	sender := &stubSender{ackFor: stateAck(t, protocol.MessageTypeTpStateGetResponse, &protocol.StateGetResponse{
		Status: protocol.StateStatusOK,
		Entries: []*protocol.StateEntry{
			{Address: "aa000100", Data: []byte("v1")},
			{Address: "aa000101"}, // unset address
		},
	})}
	ctx := NewContext("ctx1", sender)

	values, err := ctx.GetState([]string{"aa000100", "aa000101"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"aa000100": []byte("v1")}, values)

	sent := sender.sentEnvelopes()
	require.Len(t, sent, 1)
	assert.Equal(t, protocol.MessageTypeTpStateGetRequest, sent[0].t)
	req := &protocol.StateGetRequest{}
	require.NoError(t, req.Unmarshal(sent[0].content))
	assert.Equal(t, "ctx1", req.ContextID)
	assert.Equal(t, []string{"aa000100", "aa000101"}, req.Addresses)
}

func TestContextSetState(t *testing.T) {
	sender := &stubSender{ackFor: stateAck(t, protocol.MessageTypeTpStateSetResponse, &protocol.StateSetResponse{
		Status:    protocol.StateStatusOK,
		Addresses: []string{"aa000100"},
	})}
	ctx := NewContext("ctx1", sender)

	written, err := ctx.SetState(map[string][]byte{"aa000100": []byte("v1")})
	require.NoError(t, err)
	assert.Equal(t, []string{"aa000100"}, written)

	sent := sender.sentEnvelopes()
	require.Len(t, sent, 1)
	req := &protocol.StateSetRequest{}
	require.NoError(t, req.Unmarshal(sent[0].content))
	assert.Equal(t, "ctx1", req.ContextID)
	require.Len(t, req.Entries, 1)
	assert.Equal(t, "aa000100", req.Entries[0].Address)
	assert.Equal(t, []byte("v1"), req.Entries[0].Data)
}

func TestContextDeleteState(t *testing.T) {
	sender := &stubSender{ackFor: stateAck(t, protocol.MessageTypeTpStateDeleteResponse, &protocol.StateDeleteResponse{
		Status:    protocol.StateStatusOK,
		Addresses: []string{"aa000100"},
	})}
	ctx := NewContext("ctx1", sender)

	deleted, err := ctx.DeleteState([]string{"aa000100"})
	require.NoError(t, err)
	assert.Equal(t, []string{"aa000100"}, deleted)
}

func TestContextStateAuthorizationError(t *testing.T) {
	sender := &stubSender{ackFor: stateAck(t, protocol.MessageTypeTpStateGetResponse, &protocol.StateGetResponse{
		Status: protocol.StateStatusAuthorizationError,
	})}
	ctx := NewContext("ctx1", sender)

	_, err := ctx.GetState([]string{"cc000100"})
	require.Error(t, err)
	var internal *InternalError
	assert.ErrorAs(t, err, &internal)
}

func TestContextUnexpectedReplyType(t *testing.T) {
	sender := &stubSender{ackFor: stateAck(t, protocol.MessageTypeTpStateSetResponse, &protocol.StateGetResponse{
		Status: protocol.StateStatusOK,
	})}
	ctx := NewContext("ctx1", sender)

	_, err := ctx.GetState([]string{"aa000100"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected reply")
}

func TestContextSendErrorPropagates(t *testing.T) {
	sender := &stubSender{sendErrAt: map[int]error{0: messaging.ErrDisconnected}}
	ctx := NewContext("ctx1", sender)

	_, err := ctx.SetState(map[string][]byte{"aa000100": []byte("v")})
	assert.ErrorIs(t, err, messaging.ErrDisconnected)
}
