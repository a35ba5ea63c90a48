package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/problem"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// storeProblem classifies a store error. Statements rejected because of the
// values the caller sent are a 400; everything else is a 503.
func storeProblem(err error, detail string) error {
	var apiErr problem.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if isCallerError(err) {
		return problem.NewBadRequest(fmt.Sprintf("%s\n%v", detail, err)).WithCause(err)
	}
	return problem.NewUnavailable(err)
}

func isCallerError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	// SQLSTATE class 22 is a data exception, 23 an integrity violation.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}
