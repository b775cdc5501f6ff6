package postgres

import (
	"fmt"
	"strings"
)

// setClause accumulates "column = $n" assignments for a partial UPDATE.
type setClause struct {
	sets []string
	args []any
}

// add binds v to the next placeholder and returns its index.
func (s *setClause) add(column string, v any) int {
	s.args = append(s.args, v)
	s.sets = append(s.sets, fmt.Sprintf("%s = $%d", column, len(s.args)))
	return len(s.args)
}

func (s *setClause) raw(expr string) {
	s.sets = append(s.sets, expr)
}

// arg binds v without adding an assignment, for WHERE conditions.
func (s *setClause) arg(v any) int {
	s.args = append(s.args, v)
	return len(s.args)
}

func (s *setClause) String() string {
	return strings.Join(s.sets, ", ")
}

// escapeLike makes user input safe inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
