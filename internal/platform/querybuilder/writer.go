package querybuilder

import (
	"strconv"
	"strings"
)

// writer accumulates SQL text and positional arguments ($1, $2, ...).
type writer struct {
	buf  strings.Builder
	args []any
}

func (w *writer) text(parts ...string) {
	for _, part := range parts {
		w.buf.WriteString(part)
	}
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes expr replacing each '?' with the next bound value.
func (w *writer) expr(expr string, values []any) {
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(values) {
			w.bind(values[next])
			next++
			continue
		}
		w.buf.WriteByte(expr[i])
	}
}

func (w *writer) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.text(" WHERE ")
		} else {
			w.text(" AND ")
		}
		c.write(w)
	}
}

func (w *writer) list(prefix string, items []string) {
	if len(items) == 0 {
		return
	}
	w.text(prefix, strings.Join(items, ", "))
}

func (w *writer) suffix(sql string) {
	if sql == "" {
		return
	}
	w.text(" ")
	w.expr(sql, nil)
}

func (w *writer) result() (string, []any, error) {
	return w.buf.String(), w.args, nil
}
