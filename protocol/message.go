package protocol

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is the envelope every frame on the validator connection carries:
// a type discriminator, the correlation id pairing a request with its reply,
// and the encoded payload.
type Message struct {
	Type          MessageType
	CorrelationID string
	Content       []byte
}

func (m *Message) Marshal() ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	var b []byte
	if m.Type != MessageTypeDefault {
		b = appendVarintField(b, 1, uint64(m.Type))
	}
	if m.CorrelationID != "" {
		b = appendStringField(b, 2, m.CorrelationID)
	}
	if len(m.Content) > 0 {
		b = appendBytesField(b, 3, m.Content)
	}
	return b, nil
}

func (m *Message) Unmarshal(data []byte) error {
	r := reader{buf: data}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.Type = MessageType(r.varint())
		case num == 2 && typ == protowire.BytesType:
			m.CorrelationID = r.text()
		case num == 3 && typ == protowire.BytesType:
			m.Content = r.raw()
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return fmt.Errorf("protocol: decode message: %w", r.err)
	}
	return nil
}
