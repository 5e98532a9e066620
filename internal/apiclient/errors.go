package apiclient

import (
	"fmt"
	"net/http"
)

// Error - неуспешный ответ удаленного API.
// Status = 0, если ответа не было вовсе (сеть, таймаут, отмена).
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode - HTTP статус ответа API
func (e *Error) StatusCode() int {
	return e.Status
}

// ServerMessage - поле message из ответа, показывается пользователю как есть
func (e *Error) ServerMessage() string {
	return e.Message
}

// Unauthorized - токен не принят
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}
