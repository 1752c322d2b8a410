package repository

import (
	"errors"
	"fmt"

	repo "ordermgr/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// postgresのSQLSTATE
const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// ドライバのエラーをrepositoryのエラーに寄せる。
// 元のエラーは %w で残す
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", repo.ErrUniqueViolation, err)
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", repo.ErrConstraintViolation, err)
	}

	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", repo.ErrUniqueViolation, err)
		default:
			return fmt.Errorf("%w: %v", repo.ErrConstraintViolation, err)
		}
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		switch pe.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %v", repo.ErrUniqueViolation, err)
		case pgCheckViolation, pgForeignKeyViolation, pgNotNullViolation:
			return fmt.Errorf("%w: %v", repo.ErrConstraintViolation, err)
		}
	}
	return err
}
