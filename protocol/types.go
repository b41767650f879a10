// Package protocol defines the wire messages exchanged between a transaction
// processor and a validator. Messages are encoded with the protobuf wire
// format directly via protowire; the set is small enough that generated code
// would be more churn than the handful of codecs below.
package protocol

import "fmt"

// MessageType discriminates envelope payloads.
type MessageType int32

const (
	MessageTypeDefault MessageType = 0

	MessageTypeTpRegisterRequest  MessageType = 1
	MessageTypeTpRegisterResponse MessageType = 2
	MessageTypeTpProcessRequest   MessageType = 3
	MessageTypeTpProcessResponse  MessageType = 4

	MessageTypeTpStateGetRequest     MessageType = 5
	MessageTypeTpStateGetResponse    MessageType = 6
	MessageTypeTpStateSetRequest     MessageType = 7
	MessageTypeTpStateSetResponse    MessageType = 8
	MessageTypeTpStateDeleteRequest  MessageType = 9
	MessageTypeTpStateDeleteResponse MessageType = 10
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeTpRegisterRequest:
		return "TP_REGISTER_REQUEST"
	case MessageTypeTpRegisterResponse:
		return "TP_REGISTER_RESPONSE"
	case MessageTypeTpProcessRequest:
		return "TP_PROCESS_REQUEST"
	case MessageTypeTpProcessResponse:
		return "TP_PROCESS_RESPONSE"
	case MessageTypeTpStateGetRequest:
		return "TP_STATE_GET_REQUEST"
	case MessageTypeTpStateGetResponse:
		return "TP_STATE_GET_RESPONSE"
	case MessageTypeTpStateSetRequest:
		return "TP_STATE_SET_REQUEST"
	case MessageTypeTpStateSetResponse:
		return "TP_STATE_SET_RESPONSE"
	case MessageTypeTpStateDeleteRequest:
		return "TP_STATE_DELETE_REQUEST"
	case MessageTypeTpStateDeleteResponse:
		return "TP_STATE_DELETE_RESPONSE"
	default:
		return fmt.Sprintf("MESSAGE_TYPE(%d)", int32(t))
	}
}

// ResponseStatus is the outcome carried by a ProcessResponse.
type ResponseStatus int32

const (
	ResponseStatusUnset              ResponseStatus = 0
	ResponseStatusOK                 ResponseStatus = 1
	ResponseStatusInvalidTransaction ResponseStatus = 2
	ResponseStatusInternalError      ResponseStatus = 3
)

func (s ResponseStatus) String() string {
	switch s {
	case ResponseStatusOK:
		return "OK"
	case ResponseStatusInvalidTransaction:
		return "INVALID_TRANSACTION"
	case ResponseStatusInternalError:
		return "INTERNAL_ERROR"
	default:
		return fmt.Sprintf("STATUS(%d)", int32(s))
	}
}

// RegisterStatus is the outcome carried by a RegisterResponse.
type RegisterStatus int32

const (
	RegisterStatusUnset RegisterStatus = 0
	RegisterStatusOK    RegisterStatus = 1
	RegisterStatusError RegisterStatus = 2
)

// StateStatus is the outcome carried by the state-access responses.
type StateStatus int32

const (
	StateStatusUnset              StateStatus = 0
	StateStatusOK                 StateStatus = 1
	StateStatusAuthorizationError StateStatus = 2
)
