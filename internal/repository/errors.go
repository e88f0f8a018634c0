package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrNewsNotFound   = errors.New("news not found")
	ErrEmailTaken     = errors.New("email already registered to another user")
	ErrInvalidBucket  = errors.New("invalid bucket name")
	ErrBucketNotFound = errors.New("bucket not found")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func isPQCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

type scanner interface {
	Scan(dest ...any) error
}
