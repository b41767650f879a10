package protocol

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// RegisterRequest announces one (family, version) capability of a handler to
// the validator, together with the state namespaces the handler touches.
type RegisterRequest struct {
	Family     string
	Version    string
	Namespaces []string
}

func (m *RegisterRequest) Marshal() ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	var b []byte
	if m.Family != "" {
		b = appendStringField(b, 1, m.Family)
	}
	if m.Version != "" {
		b = appendStringField(b, 2, m.Version)
	}
	for _, ns := range m.Namespaces {
		b = appendStringField(b, 3, ns)
	}
	return b, nil
}

func (m *RegisterRequest) Unmarshal(data []byte) error {
	r := reader{buf: data}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.Family = r.text()
		case num == 2 && typ == protowire.BytesType:
			m.Version = r.text()
		case num == 3 && typ == protowire.BytesType:
			m.Namespaces = append(m.Namespaces, r.text())
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return fmt.Errorf("protocol: decode register request: %w", r.err)
	}
	return nil
}

// RegisterResponse acknowledges one RegisterRequest. The dispatcher only
// checks that the ack decodes; the status is surfaced for callers that care.
type RegisterResponse struct {
	Status RegisterStatus
}

func (m *RegisterResponse) Marshal() ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	var b []byte
	if m.Status != RegisterStatusUnset {
		b = appendVarintField(b, 1, uint64(m.Status))
	}
	return b, nil
}

func (m *RegisterResponse) Unmarshal(data []byte) error {
	r := reader{buf: data}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.Status = RegisterStatus(r.varint())
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return fmt.Errorf("protocol: decode register response: %w", r.err)
	}
	return nil
}
