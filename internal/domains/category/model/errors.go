package model

import (
	"errors"
	"fmt"
	"net/http"
)

type CategoryError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *CategoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

func (e *CategoryError) Is(target error) bool {
	var t *CategoryError
	return errors.As(target, &t) && t.Code == e.Code
}

var (
	ErrCategoryNotFound = &CategoryError{
		Code:    "CATEGORY_NOT_FOUND",
		Message: "카테고리를 찾을 수 없습니다",
		Status:  http.StatusNotFound,
	}
	ErrInvalidCategoryID = &CategoryError{
		Code:    "INVALID_CATEGORY_ID",
		Message: "Invalid category ID format",
		Status:  http.StatusBadRequest,
	}
	ErrDuplicateSlug = &CategoryError{
		Code:    "DUPLICATE_SLUG",
		Message: "이미 사용 중인 슬러그입니다",
		Status:  http.StatusConflict,
	}
	ErrDuplicateName = &CategoryError{
		Code:    "DUPLICATE_NAME",
		Message: "이미 존재하는 카테고리 이름입니다",
		Status:  http.StatusConflict,
	}
	ErrCategoryHasPosts = &CategoryError{
		Code:    "CATEGORY_HAS_POSTS",
		Message: "게시글이 있는 카테고리는 삭제할 수 없습니다",
		Status:  http.StatusConflict,
	}
	ErrRefetchFailed = &CategoryError{
		Code:    "CATEGORY_REFETCH_FAILED",
		Message: "저장된 카테고리를 불러오지 못했습니다",
		Status:  http.StatusInternalServerError,
	}
)

func NewDuplicateSlug(slug string) *CategoryError {
	e := *ErrDuplicateSlug
	e.Message = fmt.Sprintf("%s: %s", e.Message, slug)
	return &e
}

func NewDuplicateName(name string) *CategoryError {
	e := *ErrDuplicateName
	e.Message = fmt.Sprintf("%s: %s", e.Message, name)
	return &e
}
