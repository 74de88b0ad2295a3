package errors

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// sanitizes error messages for production responses
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}

	if os.Getenv("ENVIRONMENT") != "production" {
		return err.Error()
	}

	// database errors (pgx-specific)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return "database operation failed"
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return "resource not found"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}

	if errors.Is(err, context.Canceled) {
		return "request canceled"
	}

	// fallback to string matching for unknown error types
	errMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline"):
		return "request timed out"
	case strings.Contains(errMsg, "not found") || strings.Contains(errMsg, "no rows"):
		return "resource not found"
	case strings.Contains(errMsg, "database") || strings.Contains(errMsg, "sql") ||
		strings.Contains(errMsg, "postgres") || strings.Contains(errMsg, "pgx"):
		return "database operation failed"
	case strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") ||
		strings.Contains(errMsg, "dial"):
		return "connection error occurred"
	case strings.Contains(errMsg, "validation") || strings.Contains(errMsg, "binding") ||
		strings.Contains(errMsg, "invalid") || strings.Contains(errMsg, "required"):
		return "validation failed"
	case strings.Contains(errMsg, "unauthorized") || strings.Contains(errMsg, "forbidden") ||
		strings.Contains(errMsg, "permission") || strings.Contains(errMsg, "auth"):
		return "permission denied"
	}

	return "an error occurred"
}
