package protocol

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// StateEntry is one (address, value) pair in the validator's state store.
type StateEntry struct {
	Address string
	Data    []byte
}

func (m *StateEntry) Marshal() ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	var b []byte
	if m.Address != "" {
		b = appendStringField(b, 1, m.Address)
	}
	if len(m.Data) > 0 {
		b = appendBytesField(b, 2, m.Data)
	}
	return b, nil
}

func (m *StateEntry) Unmarshal(data []byte) error {
	r := reader{buf: data}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.Address = r.text()
		case num == 2 && typ == protowire.BytesType:
			m.Data = r.raw()
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return fmt.Errorf("protocol: decode state entry: %w", r.err)
	}
	return nil
}

// StateGetRequest reads a set of addresses within a state context.
type StateGetRequest struct {
	ContextID string
	Addresses []string
}

func (m *StateGetRequest) Marshal() ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	var b []byte
	if m.ContextID != "" {
		b = appendStringField(b, 1, m.ContextID)
	}
	for _, addr := range m.Addresses {
		b = appendStringField(b, 2, addr)
	}
	return b, nil
}

func (m *StateGetRequest) Unmarshal(data []byte) error {
	r := reader{buf: data}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.ContextID = r.text()
		case num == 2 && typ == protowire.BytesType:
			m.Addresses = append(m.Addresses, r.text())
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return fmt.Errorf("protocol: decode state get request: %w", r.err)
	}
	return nil
}

// StateGetResponse returns the entries found; addresses with no value come
// back as entries with empty data.
type StateGetResponse struct {
	Status  StateStatus
	Entries []*StateEntry
}

func (m *StateGetResponse) Marshal() ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	var b []byte
	if m.Status != StateStatusUnset {
		b = appendVarintField(b, 1, uint64(m.Status))
	}
	for _, entry := range m.Entries {
		enc, err := entry.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendBytesField(b, 2, enc)
	}
	return b, nil
}

func (m *StateGetResponse) Unmarshal(data []byte) error {
	r := reader{buf: data}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.Status = StateStatus(r.varint())
		case num == 2 && typ == protowire.BytesType:
			entry := &StateEntry{}
			if err := entry.Unmarshal(r.raw()); err != nil {
				return err
			}
			m.Entries = append(m.Entries, entry)
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return fmt.Errorf("protocol: decode state get response: %w", r.err)
	}
	return nil
}

// StateSetRequest writes a set of entries within a state context.
type StateSetRequest struct {
	ContextID string
	Entries   []*StateEntry
}

func (m *StateSetRequest) Marshal() ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	var b []byte
	if m.ContextID != "" {
		b = appendStringField(b, 1, m.ContextID)
	}
	for _, entry := range m.Entries {
		enc, err := entry.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendBytesField(b, 2, enc)
	}
	return b, nil
}

func (m *StateSetRequest) Unmarshal(data []byte) error {
	r := reader{buf: data}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.ContextID = r.text()
		case num == 2 && typ == protowire.BytesType:
			entry := &StateEntry{}
			if err := entry.Unmarshal(r.raw()); err != nil {
				return err
			}
			m.Entries = append(m.Entries, entry)
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return fmt.Errorf("protocol: decode state set request: %w", r.err)
	}
	return nil
}

// StateSetResponse lists the addresses actually written.
type StateSetResponse struct {
	Status    StateStatus
	Addresses []string
}

func (m *StateSetResponse) Marshal() ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	var b []byte
	if m.Status != StateStatusUnset {
		b = appendVarintField(b, 1, uint64(m.Status))
	}
	for _, addr := range m.Addresses {
		b = appendStringField(b, 2, addr)
	}
	return b, nil
}

func (m *StateSetResponse) Unmarshal(data []byte) error {
	r := reader{buf: data}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.Status = StateStatus(r.varint())
		case num == 2 && typ == protowire.BytesType:
			m.Addresses = append(m.Addresses, r.text())
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return fmt.Errorf("protocol: decode state set response: %w", r.err)
	}
	return nil
}

// StateDeleteRequest removes a set of addresses within a state context.
type StateDeleteRequest struct {
	ContextID string
	Addresses []string
}

func (m *StateDeleteRequest) Marshal() ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	var b []byte
	if m.ContextID != "" {
		b = appendStringField(b, 1, m.ContextID)
	}
	for _, addr := range m.Addresses {
		b = appendStringField(b, 2, addr)
	}
	return b, nil
}

func (m *StateDeleteRequest) Unmarshal(data []byte) error {
	r := reader{buf: data}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == 1 && typ == protowire.BytesType:
			m.ContextID = r.text()
		case num == 2 && typ == protowire.BytesType:
			m.Addresses = append(m.Addresses, r.text())
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return fmt.Errorf("protocol: decode state delete request: %w", r.err)
	}
	return nil
}

// StateDeleteResponse lists the addresses actually removed.
type StateDeleteResponse struct {
	Status    StateStatus
	Addresses []string
}

func (m *StateDeleteResponse) Marshal() ([]byte, error) {
	if m == nil {
		return nil, errNilMessage
	}
	var b []byte
	if m.Status != StateStatusUnset {
		b = appendVarintField(b, 1, uint64(m.Status))
	}
	for _, addr := range m.Addresses {
		b = appendStringField(b, 2, addr)
	}
	return b, nil
}

func (m *StateDeleteResponse) Unmarshal(data []byte) error {
	r := reader{buf: data}
	for {
		num, typ, ok := r.next()
		if !ok {
			break
		}
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.Status = StateStatus(r.varint())
		case num == 2 && typ == protowire.BytesType:
			m.Addresses = append(m.Addresses, r.text())
		default:
			r.skip(num, typ)
		}
	}
	if r.err != nil {
		return fmt.Errorf("protocol: decode state delete response: %w", r.err)
	}
	return nil
}
