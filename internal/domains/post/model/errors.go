package model

import (
	"errors"
	"fmt"
	"net/http"
)

type PostError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *PostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *PostError) Unwrap() error {
	return e.Err
}

func (e *PostError) Is(target error) bool {
	var t *PostError
	return errors.As(target, &t) && t.Code == e.Code
}

var (
	ErrPostNotFound = &PostError{
		Code:    "POST_NOT_FOUND",
		Message: "게시글을 찾을 수 없습니다",
		Status:  http.StatusNotFound,
	}
	ErrInvalidPostID = &PostError{
		Code:    "INVALID_POST_ID",
		Message: "Invalid post ID format",
		Status:  http.StatusBadRequest,
	}
	ErrDuplicateSlug = &PostError{
		Code:    "DUPLICATE_SLUG",
		Message: "이미 사용 중인 슬러그입니다",
		Status:  http.StatusConflict,
	}
	ErrRefetchFailed = &PostError{
		Code:    "POST_REFETCH_FAILED",
		Message: "저장된 게시글을 불러오지 못했습니다",
		Status:  http.StatusInternalServerError,
	}
	ErrInvalidAuthor = &PostError{
		Code:    "UNAUTHORIZED",
		Message: "작성자 정보가 올바르지 않습니다",
		Status:  http.StatusUnauthorized,
	}
)

func NewDuplicateSlug(slug string) *PostError {
	return &PostError{
		Code:    ErrDuplicateSlug.Code,
		Message: fmt.Sprintf("이미 사용 중인 슬러그입니다: %s", slug),
		Status:  http.StatusConflict,
	}
}
