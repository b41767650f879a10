package util

import (
	"github.com/lithammer/shortuuid/v4"
)

// GenCorrelationID returns an opaque printable token pairing one outbound
// request with its eventual reply. Tokens come from a process-wide entropy
// source; collisions are negligible, not impossible.
func GenCorrelationID() string {
	return shortuuid.New()
}
