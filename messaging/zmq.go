package messaging

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/zeromq/goczmq.v4"

	"github.com/9triver/ledgerkit/protocol"
)

// sendTimeout bounds how long a push may wait for the transport to accept an
// outbound envelope before the message is declared lost.
const sendTimeout = 10 * time.Second

// ZmqConnection is a DEALER socket connected to the validator's ROUTER
// endpoint. One frame carries one encoded envelope.
type ZmqConnection struct {
	endpoint string
	dealer   *goczmq.Channeler
	dmx      *demux

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func NewZmqConnection(endpoint string) (*ZmqConnection, error) {
	dealer := goczmq.NewDealerChanneler(endpoint)
	if dealer == nil || dealer.SendChan == nil || dealer.RecvChan == nil {
		return nil, fmt.Errorf("messaging: create dealer channeler for %s", endpoint)
	}
	c := &ZmqConnection{
		endpoint: endpoint,
		dealer:   dealer,
		dmx:      newDemux(),
		done:     make(chan struct{}),
	}
	go c.run()
	return c, nil
}

func (c *ZmqConnection) run() {
	defer c.dmx.close()
	for {
		select {
		case <-c.done:
			return
		case frames, ok := <-c.dealer.RecvChan:
			if !ok {
				return
			}
			if len(frames) == 0 {
				continue
			}
			// A dealer may deliver an empty delimiter frame first.
			data := frames[len(frames)-1]
			msg := &protocol.Message{}
			if err := msg.Unmarshal(data); err != nil {
				c.dmx.deliverError(fmt.Errorf("messaging: bad frame from %s: %w", c.endpoint, err))
				continue
			}
			c.dmx.dispatch(msg)
		}
	}
}

func (c *ZmqConnection) push(data []byte) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrDisconnected
	}
	sendChan := c.dealer.SendChan
	c.mu.Unlock()

	select {
	case <-c.done:
		return ErrDisconnected
	case sendChan <- [][]byte{data}:
		return nil
	case <-time.After(sendTimeout):
		return ErrTimeout
	}
}

func (c *ZmqConnection) demuxer() *demux {
	return c.dmx
}

func (c *ZmqConnection) Create() (Sender, Receiver) {
	return connSender{c}, connReceiver{c}
}

// Close destroys the dealer socket and releases the underlying transport
// resources. Pending futures fail with ErrDisconnected.
func (c *ZmqConnection) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	close(c.done)
	c.dealer.Destroy()
	logrus.Debugf("zmq connection to %s closed", c.endpoint)
}
