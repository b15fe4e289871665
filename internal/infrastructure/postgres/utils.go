package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Facturador-api/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidText         = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

// isInvalidID verifica si el error es un id que no es UUID válido (22P02).
// Un id así no puede existir: se trata como ErrNotFound, igual que en memoria.
func isInvalidID(err error) bool {
	return pgCode(err) == pgInvalidText
}

// mapWriteErr traduce errores de escritura a errores de dominio.
func mapWriteErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isInvalidID(err):
		return domain.ErrNotFound
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.ErrConflict
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
	}
}

// mapReadErr traduce pgx.ErrNoRows y los ids mal formados a ErrNotFound.
func mapReadErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows), isInvalidID(err):
		return domain.ErrNotFound
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
	}
}

// affectedOne exige que el comando haya afectado exactamente una fila; si no, ErrNotFound.
func affectedOne(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
