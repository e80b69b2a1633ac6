// Package criteria builds selection predicates over events.
//
// A Criteria holds up to five optional field constraints. Present fields
// become equality clauses joined with AND, in the fixed order date, time,
// name, note, complete. Values are always bound as parameters and never
// appear in the predicate text.
package criteria

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dori/scheduler/internal/model"
)

// Field names a filterable column
type Field string

const (
	FieldDate     Field = "date"
	FieldTime     Field = "time"
	FieldName     Field = "name"
	FieldNote     Field = "note"
	FieldComplete Field = "complete"
)

// Op is a comparison operator
type Op string

const OpEquals Op = "="

// Clause is one bound comparison
type Clause struct {
	Field Field
	Op    Op
	Value any
}

// SQL renders the clause with a placeholder for its value
func (c Clause) SQL() string {
	return fmt.Sprintf("%s %s ?", c.Field, c.Op)
}

// Criteria is the shared filter for show, complete, update and remove.
// A nil field contributes no clause.
type Criteria struct {
	Date     *string
	Time     *string
	Name     *string
	Note     *string
	Complete *bool
}

// ForDate returns criteria matching exactly one date
func ForDate(date string) Criteria {
	return Criteria{Date: &date}
}

// ForDateTime returns criteria matching a date and, when given, a time
func ForDateTime(date string, clock *string) Criteria {
	return Criteria{Date: &date, Time: clock}
}

// Empty returns true if no field is set. Callers must branch on it: display
// treats empty criteria as "everything", mutations as "nothing".
func (c Criteria) Empty() bool {
	return c.Date == nil && c.Time == nil && c.Name == nil && c.Note == nil && c.Complete == nil
}

// Clauses returns one clause per present field in fixed field order
func (c Criteria) Clauses() []Clause {
	var clauses []Clause
	add := func(f Field, v *string) {
		if v != nil {
			clauses = append(clauses, Clause{Field: f, Op: OpEquals, Value: *v})
		}
	}
	add(FieldDate, c.Date)
	add(FieldTime, c.Time)
	add(FieldName, c.Name)
	add(FieldNote, c.Note)
	if c.Complete != nil {
		v := 0
		if *c.Complete {
			v = 1
		}
		clauses = append(clauses, Clause{Field: FieldComplete, Op: OpEquals, Value: v})
	}
	return clauses
}

// Where returns the conjunctive predicate and its bound arguments.
// Empty criteria yield ("", nil).
func (c Criteria) Where() (string, []any) {
	clauses := c.Clauses()
	if len(clauses) == 0 {
		return "", nil
	}
	parts := make([]string, len(clauses))
	args := make([]any, len(clauses))
	for i, cl := range clauses {
		parts[i] = cl.SQL()
		args[i] = cl.Value
	}
	return strings.Join(parts, " AND "), args
}

// String describes the criteria for logs
func (c Criteria) String() string {
	clauses := c.Clauses()
	if len(clauses) == 0 {
		return "<none>"
	}
	parts := make([]string, len(clauses))
	for i, cl := range clauses {
		parts[i] = fmt.Sprintf("%s%s%v", cl.Field, cl.Op, cl.Value)
	}
	return strings.Join(parts, ",")
}

// ParseComplete reads a completion flag. Boolean words are accepted as
// strconv.ParseBool reads them; integers are truthy only when equal to 1.
func ParseComplete(s string) (*bool, error) {
	s = strings.TrimSpace(s)
	if b, err := strconv.ParseBool(s); err == nil {
		return &b, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, &model.Error{
			Kind: model.ErrMalformedInput,
			Op:   "parse completion flag",
			Err:  fmt.Errorf("%q is neither a boolean nor an integer", s),
		}
	}
	b := n == 1
	return &b, nil
}
