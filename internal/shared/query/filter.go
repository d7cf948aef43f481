// Package query describes store-agnostic row filters. Both the PostgREST and
// the gorm store translate the same predicates.
package query

import (
	"fmt"
	"regexp"
)

// Op is a comparison operator.
type Op string

const (
	OpEq    Op = "eq"
	OpNeq   Op = "neq"
	OpGt    Op = "gt"
	OpGte   Op = "gte"
	OpLt    Op = "lt"
	OpLte   Op = "lte"
	OpILike Op = "ilike"
	OpIn    Op = "in"
	OpIs    Op = "is"
)

var validOps = map[Op]bool{
	OpEq: true, OpNeq: true, OpGt: true, OpGte: true, OpLt: true,
	OpLte: true, OpILike: true, OpIn: true, OpIs: true,
}

func (o Op) IsValid() bool {
	return validOps[o]
}

var columnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidColumn reports whether name is safe to interpolate as a column identifier.
func ValidColumn(name string) bool {
	return columnPattern.MatchString(name)
}

// Predicate compares one column against a value. For OpIn the value is a
// slice; for OpIs it is nil (IS NULL). OpILike values are plain search terms,
// stores wrap them in wildcards.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

func (p Predicate) Validate() error {
	if !ValidColumn(p.Column) {
		return fmt.Errorf("invalid column %q", p.Column)
	}
	if !p.Op.IsValid() {
		return fmt.Errorf("invalid operator %q", p.Op)
	}
	return nil
}

func Eq(column string, value any) Predicate  { return Predicate{Column: column, Op: OpEq, Value: value} }
func Neq(column string, value any) Predicate { return Predicate{Column: column, Op: OpNeq, Value: value} }
func Gt(column string, value any) Predicate  { return Predicate{Column: column, Op: OpGt, Value: value} }
func Gte(column string, value any) Predicate { return Predicate{Column: column, Op: OpGte, Value: value} }
func Lt(column string, value any) Predicate  { return Predicate{Column: column, Op: OpLt, Value: value} }
func Lte(column string, value any) Predicate { return Predicate{Column: column, Op: OpLte, Value: value} }
func IsNull(column string) Predicate         { return Predicate{Column: column, Op: OpIs} }

// ILike matches term as a case-insensitive substring.
func ILike(column, term string) Predicate {
	return Predicate{Column: column, Op: OpILike, Value: term}
}

// In matches any of values.
func In[T any](column string, values []T) Predicate {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return Predicate{Column: column, Op: OpIn, Value: out}
}

// Order sorts by a column.
type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// PageFilter is skip/limit paging as exposed on the list endpoints.
type PageFilter struct {
	Skip  int
	Limit int
}

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

func (f PageFilter) Offset() int {
	if f.Skip < 0 {
		return 0
	}
	return f.Skip
}

// Size returns the effective limit; zero means DefaultLimit.
func (f PageFilter) Size() int {
	if f.Limit <= 0 {
		return DefaultLimit
	}
	if f.Limit > MaxLimit {
		return MaxLimit
	}
	return f.Limit
}

// Query is a select over one table. A zero Limit leaves the result unbounded.
type Query struct {
	Columns []string
	Where   []Predicate
	Order   []Order
	Offset  int
	Limit   int
}

type Option func(*Query)

func Where(preds ...Predicate) Option {
	return func(q *Query) { q.Where = append(q.Where, preds...) }
}

func OrderBy(orders ...Order) Option {
	return func(q *Query) { q.Order = append(q.Order, orders...) }
}

func Columns(cols ...string) Option {
	return func(q *Query) { q.Columns = cols }
}

func WithPage(p PageFilter) Option {
	return func(q *Query) {
		q.Offset = p.Offset()
		q.Limit = p.Size()
	}
}

func WithLimit(limit int) Option {
	return func(q *Query) { q.Limit = limit }
}

func New(opts ...Option) Query {
	var q Query
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

// Validate checks every identifier in the query.
func (q Query) Validate() error {
	for _, c := range q.Columns {
		if !ValidColumn(c) {
			return fmt.Errorf("invalid column %q", c)
		}
	}
	for _, p := range q.Where {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, o := range q.Order {
		if !ValidColumn(o.Column) {
			return fmt.Errorf("invalid order column %q", o.Column)
		}
	}
	if q.Offset < 0 || q.Limit < 0 {
		return fmt.Errorf("offset and limit must not be negative")
	}
	return nil
}
