package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// order_number などの重複
	ErrUniqueViolation = errors.New("unique violation")

	// CHECK / NOT NULL / 外部キー違反
	ErrConstraintViolation = errors.New("constraint violation")
)
