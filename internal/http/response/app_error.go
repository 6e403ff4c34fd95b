package response

import "fmt"

// AppError 接口错误：业务码、消息键、已翻译消息与原始错误
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%d %s", e.Code, e.Key)
	}
	return fmt.Sprintf("%d %s: %v", e.Code, e.Key, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError 构造接口错误
func NewAppError(code int, key, message string, err error) *AppError {
	return &AppError{Code: code, Key: key, Message: message, Err: err}
}
