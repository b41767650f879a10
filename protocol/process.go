package protocol

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// TransactionHeader carries the routing fields of a process request: which
// family and version the transaction was submitted against.
type TransactionHeader struct {
	FamilyName    string
	FamilyVersion string
}

func (m *TransactionHeader) Marshal() ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	var b []byte
	if m.FamilyName != "" {
		b = appendStringField(b, 1, m.FamilyName)
	}
	if m.FamilyVersion != "" {
		b = appendStringField(b, 2, m.FamilyVersion)
	}
	return b, nil
}

func (m *TransactionHeader) Unmarshal(data []byte) error {
	r := reader{buf: data}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.FamilyName = r.text()
		case num == 2 && typ == protowire.BytesType:
			m.FamilyVersion = r.text()
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return fmt.Errorf("protocol: decode transaction header: %w", r.err)
	}
	return nil
}

// ProcessRequest asks the processor to execute one transaction. ContextID
// names the validator-side state context the handler may read and write
// through for the duration of the call.
type ProcessRequest struct {
	Header    *TransactionHeader
	Payload   []byte
	Signature string
	ContextID string
}

func (m *ProcessRequest) Marshal() ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	var b []byte
	if m.Header != nil {
		hdr, err := m.Header.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendBytesField(b, 1, hdr)
	}
	if len(m.Payload) > 0 {
		b = appendBytesField(b, 2, m.Payload)
	}
	if m.Signature != "" {
		b = appendStringField(b, 3, m.Signature)
	}
	if m.ContextID != "" {
		b = appendStringField(b, 4, m.ContextID)
	}
	return b, nil
}

func (m *ProcessRequest) Unmarshal(data []byte) error {
	r := reader{buf: data}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == 1 && typ == protowire.BytesType:
			hdr := &TransactionHeader{}
			if err := hdr.Unmarshal(r.raw()); err != nil {
				return err
			}
			m.Header = hdr
		case num == 2 && typ == protowire.BytesType:
			m.Payload = r.raw()
		case num == 3 && typ == protowire.BytesType:
			m.Signature = r.text()
		case num == 4 && typ == protowire.BytesType:
			m.ContextID = r.text()
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return fmt.Errorf("protocol: decode process request: %w", r.err)
	}
	return nil
}

// ProcessResponse reports the outcome of one process request back to the
// validator. Message is only set for the two failure statuses.
type ProcessResponse struct {
	Status  ResponseStatus
	Message string
}

func (m *ProcessResponse) Marshal() ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	var b []byte
	if m.Status != ResponseStatusUnset {
		b = appendVarintField(b, 1, uint64(m.Status))
	}
	if m.Message != "" {
		b = appendStringField(b, 2, m.Message)
	}
	return b, nil
}

func (m *ProcessResponse) Unmarshal(data []byte) error {
	r := reader{buf: data}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.Status = ResponseStatus(r.varint())
		case num == 2 && typ == protowire.BytesType:
			m.Message = r.text()
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return fmt.Errorf("protocol: decode process response: %w", r.err)
	}
	return nil
}
