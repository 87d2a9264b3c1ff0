package callbacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		wantKey     string
		wantPayload string
	}{
		{name: "key only", data: "\fbuy", wantKey: "buy"},
		{name: "key with payload", data: "\fpaid|ST01011200007", wantKey: "paid", wantPayload: "ST01011200007"},
		{name: "escaped marker", data: "\\fbuy", wantKey: "buy"},
		{name: "no marker", data: "back", wantKey: "back"},
		{name: "empty payload", data: "\fpaid|", wantKey: "paid", wantPayload: ""},
		{name: "payload keeps separators", data: "\fpaid|a|b", wantKey: "paid", wantPayload: "a|b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, payload := Parse(&tele.Callback{Data: tt.data})
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantPayload, payload)
		})
	}
}

func TestParseNil(t *testing.T) {
	key, payload := Parse(nil)
	assert.Empty(t, key)
	assert.Empty(t, payload)
}
