package querybuilder

import (
	"strconv"
	"strings"
)

// sqlWriter accumulates SQL text and positional postgres arguments.
type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) raw(s string) {
	w.buf.WriteString(s)
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes expr replacing each '?' with the next bound argument.
// Surplus '?' characters are written verbatim.
func (w *sqlWriter) expr(expr string, exprArgs []any) {
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(exprArgs) {
			w.bind(exprArgs[next])
			next++
			continue
		}
		w.buf.WriteByte(expr[i])
	}
}

func (w *sqlWriter) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.raw(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.raw(" AND ")
		}
		c.writeSQL(w)
	}
}

func (w *sqlWriter) list(keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	w.raw(keyword)
	w.raw(strings.Join(parts, ", "))
}

func (w *sqlWriter) suffix(sql string) {
	if sql == "" {
		return
	}
	w.raw(" ")
	w.raw(sql)
}

func (w *sqlWriter) result() (string, []any, error) {
	return w.buf.String(), w.args, nil
}
