package messaging

import (
	"fmt"
	"net/url"
)

// Dial is the connection factory: it picks the transport from the endpoint
// scheme and returns a fresh connection bound to it. Every reconnect cycle
// goes through here again.
func Dial(endpoint string) (Connection, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("messaging: parse endpoint %q: %w", endpoint, err)
	}
	switch u.Scheme {
	case "tcp", "ipc", "inproc":
		return NewZmqConnection(endpoint)
	case "ws", "wss":
		return NewWsConnection(endpoint)
	default:
		return nil, fmt.Errorf("messaging: unsupported endpoint scheme %q", u.Scheme)
	}
}
