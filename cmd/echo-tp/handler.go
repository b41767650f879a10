package main

import (
	"crypto/sha512"
	"encoding/hex"

	"github.com/9triver/ledgerkit/processor"
	"github.com/9triver/ledgerkit/protocol"
)

const familyName = "echo"

var familyVersions = []string{"1.0"}

// namespace is the first six hex characters of the family name's hash, the
// conventional prefix for a family's state addresses.
func namespace() string {
	sum := sha512.Sum512([]byte(familyName))
	return hex.EncodeToString(sum[:])[:6]
}

// EchoHandler stores each transaction payload at an address derived from the
// payload itself. It exists to exercise a deployment end to end.
type EchoHandler struct{}

func (h *EchoHandler) FamilyName() string {
	return familyName
}

func (h *EchoHandler) FamilyVersions() []string {
	return familyVersions
}

func (h *EchoHandler) Namespaces() []string {
	return []string{namespace()}
}

func (h *EchoHandler) Apply(request *protocol.ProcessRequest, context *processor.Context) error {
	if len(request.Payload) == 0 {
		return &processor.InvalidTransactionError{Msg: "empty payload"}
	}

	sum := sha512.Sum512(request.Payload)
	address := namespace() + hex.EncodeToString(sum[:])[:64]
	if _, err := context.SetState(map[string][]byte{address: request.Payload}); err != nil {
		return err
	}
	return nil
}
