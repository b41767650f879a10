package messaging

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/9triver/ledgerkit/protocol"
)

// WsConnection speaks the same envelope protocol over a websocket: one binary
// message per envelope. It exists for validators reachable only through
// HTTP-friendly infrastructure, and as a pure-Go transport path.
type WsConnection struct {
	endpoint string
	ws       *websocket.Conn
	dmx      *demux

	wmu    sync.Mutex
	closed bool
}

func NewWsConnection(endpoint string) (*WsConnection, error) {
	ws, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: dial %s: %w", endpoint, err)
	}
	c := &WsConnection{
		endpoint: endpoint,
		ws:       ws,
		dmx:      newDemux(),
	}
	go c.run()
	return c, nil
}

func (c *WsConnection) run() {
	// Once the read side fails the connection is gone: mark it closed so
	// concurrent pushes classify as disconnected, then end the streams.
	defer c.dmx.close()
	defer c.markClosed()
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		msg := &protocol.Message{}
		if err := msg.Unmarshal(data); err != nil {
			c.dmx.deliverError(fmt.Errorf("messaging: bad frame from %s: %w", c.endpoint, err))
			continue
		}
		c.dmx.dispatch(msg)
	}
}

func (c *WsConnection) push(data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if c.closed {
		return ErrDisconnected
	}

	_ = c.ws.SetWriteDeadline(time.Now().Add(sendTimeout))
	err := c.ws.WriteMessage(websocket.BinaryMessage, data)
	if err == nil {
		return nil
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) || errors.Is(err, websocket.ErrCloseSent) ||
		errors.Is(err, net.ErrClosed) || errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
		return ErrDisconnected
	}
	return err
}

func (c *WsConnection) markClosed() {
	c.wmu.Lock()
	c.closed = true
	c.wmu.Unlock()
	_ = c.ws.Close()
}

func (c *WsConnection) demuxer() *demux {
	return c.dmx
}

func (c *WsConnection) Create() (Sender, Receiver) {
	return connSender{c}, connReceiver{c}
}

// Close tears the socket down. The failing read loop then fails pending
// futures and ends the receiver stream.
func (c *WsConnection) Close() {
	c.markClosed()
}
