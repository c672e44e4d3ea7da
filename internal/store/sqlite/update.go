package sqlite

import (
	"context"
	"strings"

	"github.com/caterdir/caterdir-server/internal/errors"
)

// partialUpdate builds and executes an UPDATE statement from the subset of
// allowed columns present in fields. Column order follows the whitelist so
// generated SQL is deterministic.
func (s *Store) partialUpdate(ctx context.Context, table, operation string, id int64, allowed []string, fields map[string]any) error {
	setParts := make([]string, 0, len(allowed))
	args := make([]any, 0, len(allowed)+1)
	for _, col := range allowed {
		if v, ok := fields[col]; ok {
			setParts = append(setParts, col+" = ?")
			args = append(args, v)
		}
	}
	if len(setParts) == 0 {
		return errors.InvalidOperation("no fields to update")
	}
	args = append(args, id)

	query := "UPDATE " + table + " SET " + strings.Join(setParts, ", ") + " WHERE id = ?"
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrDuplicate.WithCause(err)
		}
		return wrapDB(operation, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return wrapDB(operation, err)
	}
	if affected == 0 {
		return errors.ErrNotFound
	}
	return nil
}
