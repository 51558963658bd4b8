package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/hitoshi/officehub/internal/model"
)

// PostgreSQLのSQLSTATE
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// uniqueConstraintErrors は一意制約名からドメインエラーへの対応表。
var uniqueConstraintErrors = map[string]func() *model.APIError{
	"accounts_username_key":    model.NewDuplicateUsernameError,
	"hangouts_date_key":        model.NewDuplicateHangoutDateError,
	"brownbags_date_key":       model.NewDuplicateBrownbagDateError,
	"brownbags_account_id_key": model.NewBrownbagAlreadyAssignedError,
}

// translateError はPostgreSQLの制約違反をドメインエラーに変換する。
// 制約違反以外のエラーは操作名を付けてラップする。
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	switch string(pqErr.Code) {
	case pqUniqueViolation:
		if newErr, ok := uniqueConstraintErrors[pqErr.Constraint]; ok {
			return newErr()
		}
	case pqForeignKeyViolation:
		return model.NewReferenceNotFoundError(pqErr.Constraint)
	case pqCheckViolation:
		if pqErr.Constraint == "brownbags_status_check" {
			return model.NewInvalidBrownbagStatusError(pqErr.Detail)
		}
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

// isUniqueViolation はerrが指定した一意制約の違反かどうかを返す。
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pqUniqueViolation && pqErr.Constraint == constraint
}

// isUUID はUUID列と比較できる値かどうかを返す。
// UUIDとして不正な値で検索するとPostgreSQLが構文エラーを返すため、事前に弾く。
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// newID は新しいエンティティIDを生成する。
func newID() string {
	return uuid.New().String()
}
