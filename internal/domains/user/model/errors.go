package model

import (
	"errors"
	"fmt"
	"net/http"
)

type UserError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func (e *UserError) Is(target error) bool {
	var t *UserError
	return errors.As(target, &t) && t.Code == e.Code
}

var (
	ErrUserNotFound = &UserError{
		Code:    "USER_NOT_FOUND",
		Message: "사용자를 찾을 수 없습니다",
		Status:  http.StatusNotFound,
	}
	ErrNotAdmin = &UserError{
		Code:    "FORBIDDEN",
		Message: "관리자 권한이 필요합니다",
		Status:  http.StatusForbidden,
	}
)
