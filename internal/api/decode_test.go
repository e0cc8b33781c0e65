package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	both := &ResponseError{StatusCode: 400, Body: []byte(`{"msg":"from msg","message":"from message"}`)}
	onlyMessage := &ResponseError{StatusCode: 400, Body: []byte(`{"message":"from message"}`)}
	notJSON := &ResponseError{StatusCode: 502, Body: []byte(`<html>bad gateway</html>`)}

	tests := []struct {
		name        string
		err         error
		field       MessageField
		wantKind    FailureKind
		wantMessage string
		wantStatus  int
	}{
		{"nil", nil, PreferMsg, FailureNone, "", 0},
		{"transport", transportErr(), PreferMsg, FailureTransport, "", 0},
		{"wrapped transport", fmt.Errorf("login: %w", transportErr()), PreferMsg, FailureTransport, "", 0},
		{"prefer msg", both, PreferMsg, FailureApplication, "from msg", 400},
		{"prefer message", both, PreferMessage, FailureApplication, "from message", 400},
		{"msg falls back to message", onlyMessage, PreferMsg, FailureApplication, "from message", 400},
		{"msg only ignores message", onlyMessage, MsgOnly, FailureApplication, "", 400},
		{"non-json body", notJSON, PreferMsg, FailureApplication, "", 502},
		{"other", errors.New("boom"), PreferMsg, FailureOther, "boom", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Decode(tt.err, tt.field)
			assert.Equal(t, tt.wantKind, f.Kind)
			assert.Equal(t, tt.wantMessage, f.Message)
			assert.Equal(t, tt.wantStatus, f.StatusCode)
		})
	}
}
