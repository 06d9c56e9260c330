package database

import (
	"fmt"
	"strings"
)

// QueryBuilder helps build WHERE clauses safely
type QueryBuilder struct {
	conditions []string
	args       []interface{}
	argCount   int
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		conditions: []string{},
		args:       []interface{}{},
		argCount:   1,
	}
}

func (qb *QueryBuilder) AddCondition(column string, value interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = $%d", column, qb.argCount))
	qb.args = append(qb.args, value)
	qb.argCount++
}

// AddContainsAny matches rows whose JSONB column contains at least one of
// docs. Each doc must be a JSON object.
func (qb *QueryBuilder) AddContainsAny(column string, docs [][]byte) {
	if len(docs) == 0 {
		return
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, fmt.Sprintf("%s @> $%d::jsonb", column, qb.argCount))
		qb.args = append(qb.args, doc)
		qb.argCount++
	}

	if len(parts) == 1 {
		qb.conditions = append(qb.conditions, parts[0])
		return
	}
	qb.conditions = append(qb.conditions, "("+strings.Join(parts, " OR ")+")")
}

func (qb *QueryBuilder) WhereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}

func (qb *QueryBuilder) NextArgNum() int {
	return qb.argCount
}
