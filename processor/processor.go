package processor

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/9triver/ledgerkit/internal/util"
	"github.com/9triver/ledgerkit/messaging"
	"github.com/9triver/ledgerkit/protocol"
)

// serveStep is the outcome of one serve-loop iteration.
type serveStep int

const (
	stepContinue serveStep = iota
	stepReconnect
	stepTerminate
)

// TransactionProcessor connects to a validator, registers its handlers, and
// services process requests until an unrecoverable transport error ends the
// run. One processor drives one connection with a single dispatch goroutine;
// requests are handled strictly one at a time.
type TransactionProcessor struct {
	endpoint string
	handlers []TransactionHandler
	dial     func(endpoint string) (messaging.Connection, error)
}

func New(endpoint string) *TransactionProcessor {
	return &TransactionProcessor{
		endpoint: endpoint,
		dial:     messaging.Dial,
	}
}

// AddHandler appends a transaction family handler. Handlers must all be
// added before Start; the registry is read-only while serving.
func (tp *TransactionProcessor) AddHandler(handler TransactionHandler) {
	tp.handlers = append(tp.handlers, handler)
}

// Start blocks the calling goroutine until the processor terminates.
// Registration failures and disconnects trigger an immediate full
// connect/register cycle against the same endpoint; retries are unbounded
// with no backoff. Only an unclassified send error ends the run.
func (tp *TransactionProcessor) Start() {
	for {
		logrus.Infof("connecting to endpoint: %s", tp.endpoint)
		conn, err := tp.dial(tp.endpoint)
		if err != nil {
			logrus.Errorf("connect failed: %v", err)
			continue
		}
		sender, receiver := conn.Create()

		// Partial registration is never resumed: any failure discards the
		// connection and the next cycle starts from scratch.
		if !tp.register(sender) {
			sender.Close()
			continue
		}

		terminated := tp.serve(sender, receiver)
		sender.Close()
		if terminated {
			logrus.Info("processor terminated")
			return
		}
	}
}

// register announces every (handler, version) pair to the validator in
// registry order, blocking on each acknowledgement. It returns false on the
// first failure without attempting later pairs.
func (tp *TransactionProcessor) register(sender messaging.Sender) bool {
	for _, handler := range tp.handlers {
		for _, version := range handler.FamilyVersions() {
			req := &protocol.RegisterRequest{
				Family:     handler.FamilyName(),
				Version:    version,
				Namespaces: handler.Namespaces(),
			}
			logrus.Infof("sending registration request: %s %s", req.Family, req.Version)

			data, err := req.Marshal()
			if err != nil {
				logrus.Errorf("serialization failed: %v", err)
				return false
			}

			fut, err := sender.Send(protocol.MessageTypeTpRegisterRequest, util.GenCorrelationID(), data)
			if err != nil {
				logrus.Errorf("registration failed: %v", err)
				return false
			}

			ack, err := fut.Result()
			if err != nil {
				logrus.Errorf("registration failed: %v", err)
				return false
			}

			resp := &protocol.RegisterResponse{}
			if err := resp.Unmarshal(ack.Content); err != nil {
				logrus.Errorf("registration ack malformed: %v", err)
				return false
			}
			// An empty ack body counts as acceptance; only an explicit
			// error status rejects the pair.
			if resp.Status == protocol.RegisterStatusError {
				logrus.Errorf("registration rejected: %s %s", req.Family, req.Version)
				return false
			}
		}
	}
	return true
}

// serve runs the dispatch loop for one connection. It returns true when the
// processor must terminate and false when it should reconnect.
func (tp *TransactionProcessor) serve(sender messaging.Sender, receiver messaging.Receiver) bool {
	for {
		msg, err := receiver.Recv()
		if err != nil {
			if errors.Is(err, messaging.ErrDisconnected) {
				logrus.Info("trying to reconnect")
				return false
			}
			logrus.Errorf("receive error: %v", err)
			continue
		}

		logrus.Debugf("received %s correlation %s", msg.Type, msg.CorrelationID)

		var step serveStep
		switch msg.Type {
		case protocol.MessageTypeTpProcessRequest:
			step = tp.handleProcessRequest(sender, msg)
		default:
			resp := &protocol.ProcessResponse{
				Status:  protocol.ResponseStatusInternalError,
				Message: "not implemented...",
			}
			step = tp.reply(sender, msg.CorrelationID, resp)
		}

		switch step {
		case stepReconnect:
			logrus.Info("trying to reconnect")
			return false
		case stepTerminate:
			return true
		}
	}
}

func (tp *TransactionProcessor) handleProcessRequest(sender messaging.Sender, msg *protocol.Message) serveStep {
	request := &protocol.ProcessRequest{}
	if err := request.Unmarshal(msg.Content); err != nil {
		// Undecodable requests are dropped, not answered.
		logrus.Errorf("cannot parse process request: %v", err)
		return stepContinue
	}

	response := &protocol.ProcessResponse{}
	handler := tp.findHandler(request.Header)
	if handler == nil {
		var family, version string
		if request.Header != nil {
			family, version = request.Header.FamilyName, request.Header.FamilyVersion
		}
		response.Status = protocol.ResponseStatusInternalError
		response.Message = fmt.Sprintf("no handler registered for family %q version %q", family, version)
		logrus.Errorf("%s", response.Message)
		return tp.reply(sender, msg.CorrelationID, response)
	}

	context := NewContext(request.ContextID, sender)
	err := handler.Apply(request, context)
	var invalid *InvalidTransactionError
	switch {
	case err == nil:
		response.Status = protocol.ResponseStatusOK
	case errors.As(err, &invalid):
		response.Status = protocol.ResponseStatusInvalidTransaction
		response.Message = invalid.Msg
		logrus.Infof("invalid transaction: %s", invalid.Msg)
	default:
		response.Status = protocol.ResponseStatusInternalError
		response.Message = err.Error()
		logrus.Errorf("apply failed: %v", err)
	}

	return tp.reply(sender, msg.CorrelationID, response)
}

// findHandler routes by the family and version declared in the request
// header, in registry order.
func (tp *TransactionProcessor) findHandler(header *protocol.TransactionHeader) TransactionHandler {
	if header == nil {
		return nil
	}
	for _, handler := range tp.handlers {
		if handler.FamilyName() != header.FamilyName {
			continue
		}
		for _, version := range handler.FamilyVersions() {
			if version == header.FamilyVersion {
				return handler
			}
		}
	}
	return nil
}

// reply sends a process response under the request's correlation id and maps
// the transport outcome: disconnects force a reconnect, timeouts lose the
// message and keep serving, anything else ends the run.
func (tp *TransactionProcessor) reply(sender messaging.Sender, correlationID string, response *protocol.ProcessResponse) serveStep {
	data, err := response.Marshal()
	if err != nil {
		logrus.Errorf("serialization failed: %v", err)
		return stepContinue
	}

	switch err := sender.Reply(protocol.MessageTypeTpProcessResponse, correlationID, data); {
	case err == nil:
		return stepContinue
	case errors.Is(err, messaging.ErrDisconnected):
		logrus.Error("disconnected while replying")
		return stepReconnect
	case errors.Is(err, messaging.ErrTimeout):
		logrus.Errorf("reply %s timed out", correlationID)
		return stepContinue
	default:
		logrus.Errorf("unrecoverable send error: %v", err)
		return stepTerminate
	}
}
