package usecase

import (
	"errors"
	"fmt"

	repo "ordermgr/internal/repository"
)

// エラーの種類（表示側はこれでステータスやメッセージを決める）
type ErrorKind string

const (
	KindNotFound            ErrorKind = "NOT_FOUND"
	KindUniqueViolation     ErrorKind = "UNIQUE_VIOLATION"
	KindConstraintViolation ErrorKind = "CONSTRAINT_VIOLATION"
	KindInsufficientStock   ErrorKind = "INSUFFICIENT_STOCK"
	KindArchivalIO          ErrorKind = "ARCHIVAL_IO"
	KindInvalidInput        ErrorKind = "INVALID_INPUT"
	KindInternal            ErrorKind = "INTERNAL"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind ErrorKind, message string) error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

func wrapError(kind ErrorKind, err error, message string) error {
	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func AsError(err error) (*Error, bool) {
	var ue *Error
	ok := errors.As(err, &ue)
	return ue, ok
}

// usecase.Error でなければ INTERNAL
func KindOf(err error) ErrorKind {
	if ue, ok := AsError(err); ok {
		return ue.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// repositoryのエラーをusecaseのエラーに変換
func fromRepoError(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return wrapError(KindNotFound, err, notFoundMsg)
	case errors.Is(err, repo.ErrUniqueViolation):
		return wrapError(KindUniqueViolation, err, "unique constraint violated")
	case errors.Is(err, repo.ErrConstraintViolation):
		return wrapError(KindConstraintViolation, err, fmt.Sprintf("constraint violated: %v", err))
	default:
		return wrapError(KindInternal, err, "db error")
	}
}

// Tx自体（commitなど）の失敗はINTERNALに寄せる
func ensureError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsError(err); ok {
		return err
	}
	return wrapError(KindInternal, err, "transaction failed")
}
