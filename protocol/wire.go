package protocol

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

var errNilMessage = errors.New("protocol: nil message")

// reader walks the fields of one encoded message. The error is sticky; callers
// range with next() and check err once the loop ends.
type reader struct {
	buf []byte
	err error
}

func (r *reader) next() (protowire.Number, protowire.Type, bool) {
	if r.err != nil || len(r.buf) == 0 {
		return 0, 0, false
	}
	num, typ, n := protowire.ConsumeTag(r.buf)
	if n < 0 {
		r.err = protowire.ParseError(n)
		return 0, 0, false
	}
	r.buf = r.buf[n:]
	return num, typ, true
}

func (r *reader) varint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := protowire.ConsumeVarint(r.buf)
	if n < 0 {
		r.err = protowire.ParseError(n)
		return 0
	}
	r.buf = r.buf[n:]
	return v
}

func (r *reader) text() string {
	if r.err != nil {
		return ""
	}
	v, n := protowire.ConsumeString(r.buf)
	if n < 0 {
		r.err = protowire.ParseError(n)
		return ""
	}
	r.buf = r.buf[n:]
	return v
}

// raw returns a detached copy so decoded messages do not alias transport
// buffers.
func (r *reader) raw() []byte {
	if r.err != nil {
		return nil
	}
	v, n := protowire.ConsumeBytes(r.buf)
	if n < 0 {
		r.err = protowire.ParseError(n)
		return nil
	}
	r.buf = r.buf[n:]
	return append([]byte(nil), v...)
}

func (r *reader) skip(num protowire.Number, typ protowire.Type) {
	if r.err != nil {
		return
	}
	n := protowire.ConsumeFieldValue(num, typ, r.buf)
	if n < 0 {
		r.err = protowire.ParseError(n)
		return
	}
	r.buf = r.buf[n:]
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendStringField(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}
