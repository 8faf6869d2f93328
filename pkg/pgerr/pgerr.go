package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые обрабатываются отдельно
const (
	CodeUniqueViolation           pq.ErrorCode = "23505"
	CodeForeignKeyViolation       pq.ErrorCode = "23503"
	CodeExclusionViolation        pq.ErrorCode = "23P01"
	CodeSerializationFailure      pq.ErrorCode = "40001"
	CodeDeadlockDetected          pq.ErrorCode = "40P01"
	CodeInvalidTextRepresentation pq.ErrorCode = "22P02"
)

// Code возвращает код ошибки PostgreSQL или пустую строку
func Code(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}

// IsExclusionViolation нарушение EXCLUDE-ограничения (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	return Code(err) == CodeExclusionViolation
}

// IsRetryable ошибка сериализации или дедлок: транзакцию можно повторить
func IsRetryable(err error) bool {
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}

// IsInvalidText значение не приводится к типу колонки (например, не-UUID в колонке uuid)
func IsInvalidText(err error) bool {
	return Code(err) == CodeInvalidTextRepresentation
}
