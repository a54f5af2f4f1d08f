package model

import (
	"errors"
	"fmt"
	"net/http"
)

// TagError is the base error of the tag domain.
type TagError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *TagError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *TagError) Unwrap() error {
	return e.Err
}

// Is matches on Code so wrapped copies compare equal to the sentinels below.
func (e *TagError) Is(target error) bool {
	var t *TagError
	return errors.As(target, &t) && t.Code == e.Code
}

var (
	ErrTagNotFound = &TagError{
		Code:    "TAG_NOT_FOUND",
		Message: "태그를 찾을 수 없습니다",
		Status:  http.StatusNotFound,
	}
	ErrInvalidTagID = &TagError{
		Code:    "INVALID_TAG_ID",
		Message: "Invalid tag ID format",
		Status:  http.StatusBadRequest,
	}
	ErrDuplicateSlug = &TagError{
		Code:    "DUPLICATE_SLUG",
		Message: "이미 사용 중인 슬러그입니다",
		Status:  http.StatusConflict,
	}
	ErrDuplicateName = &TagError{
		Code:    "DUPLICATE_NAME",
		Message: "이미 존재하는 태그 이름입니다",
		Status:  http.StatusConflict,
	}
	// ErrRefetchFailed means a row that was just written could not be read back.
	ErrRefetchFailed = &TagError{
		Code:    "TAG_REFETCH_FAILED",
		Message: "저장된 태그를 불러오지 못했습니다",
		Status:  http.StatusInternalServerError,
	}
)

func NewDuplicateSlug(slug string) *TagError {
	return &TagError{
		Code:    ErrDuplicateSlug.Code,
		Message: fmt.Sprintf("이미 사용 중인 슬러그입니다: %s", slug),
		Status:  http.StatusConflict,
	}
}

func NewDuplicateName(name string) *TagError {
	return &TagError{
		Code:    ErrDuplicateName.Code,
		Message: fmt.Sprintf("이미 존재하는 태그 이름입니다: %s", name),
		Status:  http.StatusConflict,
	}
}

// AsTagError extracts a *TagError from err.
func AsTagError(err error) (*TagError, bool) {
	var e *TagError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
