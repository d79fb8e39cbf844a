package querybuilder

type Condition interface {
	writeSQL(w *sqlWriter)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func (c compareCondition) writeSQL(w *sqlWriter) {
	w.raw(c.column)
	w.raw(" ")
	w.raw(c.op)
	w.raw(" ")
	w.bind(c.value)
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: "=", value: value}
}

func Lte(column string, value any) Condition {
	return compareCondition{column: column, op: "<=", value: value}
}

func Gte(column string, value any) Condition {
	return compareCondition{column: column, op: ">=", value: value}
}

type inCondition struct {
	column string
	values []any
}

// In renders "column IN (...)". An empty set matches nothing.
func In[T any](column string, values []T) Condition {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return inCondition{column: column, values: out}
}

func (c inCondition) writeSQL(w *sqlWriter) {
	if len(c.values) == 0 {
		w.raw("1=0")
		return
	}
	w.raw(c.column)
	w.raw(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.raw(", ")
		}
		w.bind(v)
	}
	w.raw(")")
}

type isNullCondition struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) writeSQL(w *sqlWriter) {
	w.raw(c.column)
	w.raw(" IS NULL")
}

type exprCondition struct {
	expr string
	args []any
}

// Expr embeds a raw predicate. Each '?' consumes one of args.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) writeSQL(w *sqlWriter) {
	w.expr(c.expr, c.args)
}
