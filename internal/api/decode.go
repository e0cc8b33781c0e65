package api

import (
	"encoding/json"
	"errors"
	"strings"
)

// FailureKind tags a decoded failure.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureTransport
	FailureApplication
	FailureOther
)

// MessageField selects which server message field(s) to read, in order.
type MessageField int

const (
	// PreferMsg reads "msg", then "message".
	PreferMsg MessageField = iota
	// PreferMessage reads "message", then "msg".
	PreferMessage
	// MsgOnly reads "msg".
	MsgOnly
)

// Failure is the normalized shape of any error returned by Client.
type Failure struct {
	Kind       FailureKind
	StatusCode int
	Message    string
	Err        error
}

type serverMessage struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

// Decode classifies err once so callers never inspect raw response shapes.
// A nil err decodes to FailureNone.
func Decode(err error, field MessageField) Failure {
	if err == nil {
		return Failure{Kind: FailureNone}
	}

	var te *TransportError
	if errors.As(err, &te) {
		return Failure{Kind: FailureTransport, Err: err}
	}

	var re *ResponseError
	if !errors.As(err, &re) {
		return Failure{Kind: FailureOther, Message: err.Error(), Err: err}
	}

	f := Failure{Kind: FailureApplication, StatusCode: re.StatusCode, Err: err}
	var sm serverMessage
	if json.Unmarshal(re.Body, &sm) == nil {
		f.Message = pick(sm, field)
	}
	return f
}

func pick(sm serverMessage, field MessageField) string {
	msg := strings.TrimSpace(sm.Msg)
	message := strings.TrimSpace(sm.Message)
	switch field {
	case PreferMessage:
		if message != "" {
			return message
		}
		return msg
	case MsgOnly:
		return msg
	default:
		if msg != "" {
			return msg
		}
		return message
	}
}
