package domain

type ErrorCode string

const (
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeStoreFailure   ErrorCode = "STORE_FAILURE"
	CodePartialFailure ErrorCode = "PARTIAL_FAILURE"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
)

// Result is the envelope every notification operation answers with.
// Code never leaves the process; handlers use it to pick a status.
type Result[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data"`
	Error   string    `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
	Code    ErrorCode `json:"-"`
}

func OK[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

func Fail[T any](code ErrorCode, err error) Result[T] {
	return Result[T]{Success: false, Error: err.Error(), Code: code}
}
