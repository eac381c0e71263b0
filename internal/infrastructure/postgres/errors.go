package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUUID guards uuid columns: a malformed id cannot match any row, and
// postgres would reject it with a cast error.
func isUUID(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}

// isUniqueViolation reports a unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// where accumulates ILIKE conditions and their positional args.
type where struct {
	conds []string
	args  []any
}

func (w *where) ilike(column, value string) {
	if value == "" {
		return
	}
	w.args = append(w.args, "%"+escapeLike(value)+"%")
	w.conds = append(w.conds, fmt.Sprintf("%s ILIKE $%d", column, len(w.args)))
}

func (w *where) eq(column string, value any) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
