package normalize

import (
	"encoding/json"
	"strings"
)

// エラーボディの "message" は文字列のことも配列のこともある。
type errorMessage struct {
	parts []string
	ok    bool
}

func (m *errorMessage) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		m.parts, m.ok = []string{s}, true
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		m.parts, m.ok = arr, true
		return nil
	}
	m.ok = false
	return nil
}

type errorBody struct {
	Detail  flexString   `json:"detail"`
	Message errorMessage `json:"message"`
	Error   flexString   `json:"error"`
}

// ErrorMessage extracts a server-supplied error message.
// detail → message → error の順。どれも無ければ空文字。
func ErrorMessage(data []byte) string {
	var b errorBody
	if err := json.Unmarshal(data, &b); err != nil {
		return ""
	}
	if b.Detail.ok && b.Detail.val != "" {
		return b.Detail.val
	}
	if b.Message.ok {
		if msg := strings.Join(b.Message.parts, "\n"); msg != "" {
			return msg
		}
	}
	if b.Error.ok {
		return b.Error.val
	}
	return ""
}
