package gateway

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindInvalidRequest  ErrorKind = "invalid_request"
	KindInvalidResponse ErrorKind = "invalid_response"
	KindHTTP            ErrorKind = "http_error"
	KindDecoding        ErrorKind = "decoding_error"
	KindNetwork         ErrorKind = "network_error"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindNotFound        ErrorKind = "not_found"
	KindServer          ErrorKind = "server_error"
)

// APIError は呼び出し側に返す型付きエラー。
// 「サーバーがNOと言った」(KindHTTP等) と「YESだが読めなかった」
// (KindDecoding) を呼び出し側で区別できるようにする。
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindUnauthorized:
		return "unauthorized, please login again"
	case KindNotFound:
		return "resource not found"
	case KindServer:
		if e.Message != "" {
			return e.Message
		}
		return "server error, please try again later"
	case KindHTTP:
		if e.Message != "" {
			return e.Message
		}
		return fmt.Sprintf("request failed (%d)", e.Status)
	case KindDecoding:
		return "failed to decode response"
	case KindNetwork:
		return fmt.Sprintf("network error: %v", e.Err)
	case KindInvalidRequest:
		return "invalid request"
	case KindInvalidResponse:
		return "invalid response from server"
	default:
		return "an unknown error occurred"
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func NewAPIError(kind ErrorKind, status int, message string) error {
	return &APIError{Kind: kind, Status: status, Message: message}
}

func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	ok := errors.As(err, &ae)
	return ae, ok
}

// IsKind は errors.As + Kind比較のショートカット。
func IsKind(err error, kind ErrorKind) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.Kind == kind
}
