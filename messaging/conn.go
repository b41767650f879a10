package messaging

import (
	"github.com/9triver/ledgerkit/protocol"
)

// transportConn is what a concrete transport supplies: a way to push one
// encoded envelope and the shared demux feeding futures and the receiver.
type transportConn interface {
	push(data []byte) error
	demuxer() *demux
	Close()
}

// connSender and connReceiver are the handle types returned by Create. They
// hold no state of their own, so copying a sender into a request context
// shares the connection the way the dispatch loop expects.
type connSender struct {
	c transportConn
}

func (s connSender) Send(t protocol.MessageType, correlationID string, content []byte) (*Future, error) {
	env := &protocol.Message{Type: t, CorrelationID: correlationID, Content: content}
	data, err := env.Marshal()
	if err != nil {
		return nil, err
	}
	fut := s.c.demuxer().expect(correlationID)
	if err := s.c.push(data); err != nil {
		s.c.demuxer().forget(correlationID)
		fut.Fail(err)
		return nil, err
	}
	return fut, nil
}

func (s connSender) Reply(t protocol.MessageType, correlationID string, content []byte) error {
	env := &protocol.Message{Type: t, CorrelationID: correlationID, Content: content}
	data, err := env.Marshal()
	if err != nil {
		return err
	}
	return s.c.push(data)
}

func (s connSender) Close() {
	s.c.Close()
}

type connReceiver struct {
	c transportConn
}

func (r connReceiver) Recv() (*protocol.Message, error) {
	return r.c.demuxer().recv()
}
