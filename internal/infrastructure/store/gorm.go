package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/query"
)

// MySQL server error numbers.
const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

const (
	codeUndefinedColumn = "42703"
	codeUndefinedTable  = "42P01"

	sqliteUniqueFailed     = "UNIQUE constraint failed"
	sqliteForeignKeyFailed = "FOREIGN KEY constraint failed"
)

// Gorm serves the store primitives from a relational database. Each table
// must be registered with a pointer to its gorm model; rows are converted to
// and from the model through its JSON tags.
type Gorm struct {
	db      *gorm.DB
	models  map[string]reflect.Type
	schemas map[string]*schema.Schema
	logger  logger.Interface
}

// NewGorm registers models keyed by table name.
func NewGorm(db *gorm.DB, models map[string]any, log logger.Interface) (*Gorm, error) {
	s := &Gorm{
		db:      db,
		models:  make(map[string]reflect.Type, len(models)),
		schemas: make(map[string]*schema.Schema, len(models)),
		logger:  log.Named("gormstore"),
	}
	for table, model := range models {
		t := reflect.TypeOf(model)
		if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("model for %s must be a struct pointer, got %T", table, model)
		}
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model for %s: %w", table, err)
		}
		s.models[table] = t.Elem()
		s.schemas[table] = stmt.Schema
	}
	return s, nil
}

func (s *Gorm) Select(ctx context.Context, table string, q query.Query) ([]Row, error) {
	if err := q.Validate(); err != nil {
		return nil, &Error{Status: http.StatusBadRequest, Message: err.Error()}
	}
	t, sch, err := s.lookup(table)
	if err != nil {
		return nil, err
	}
	for _, c := range q.Columns {
		if sch.LookUpField(c) == nil {
			return nil, undefinedColumn(table, c)
		}
	}

	tx, err := s.where(s.db.WithContext(ctx).Model(reflect.New(t).Interface()), table, sch, q.Where)
	if err != nil {
		return nil, err
	}
	for _, o := range q.Order {
		if sch.LookUpField(o.Column) == nil {
			return nil, undefinedColumn(table, o.Column)
		}
		dir := " ASC"
		if o.Desc {
			dir = " DESC"
		}
		tx = tx.Order(o.Column + dir)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	dest := reflect.New(reflect.SliceOf(t))
	if err := tx.Find(dest.Interface()).Error; err != nil {
		return nil, s.classify("select", table, err)
	}
	rows, err := toRows(dest.Elem())
	if err != nil {
		return nil, err
	}
	if len(q.Columns) > 0 {
		for i, row := range rows {
			rows[i] = project(row, q.Columns)
		}
	}
	return rows, nil
}

func (s *Gorm) Insert(ctx context.Context, table string, row Row) (Row, error) {
	t, sch, err := s.lookup(table)
	if err != nil {
		return nil, err
	}
	for col := range row {
		if sch.LookUpField(col) == nil {
			return nil, undefinedColumn(table, col)
		}
	}

	model := reflect.New(t).Interface()
	if err := Decode(row, model); err != nil {
		return nil, &Error{Status: http.StatusBadRequest, Message: err.Error()}
	}
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, s.classify("insert", table, err)
	}
	return Encode(model)
}

func (s *Gorm) Update(ctx context.Context, table string, where []query.Predicate, patch Row) ([]Row, error) {
	if len(where) == 0 {
		return nil, &Error{Status: http.StatusBadRequest, Message: "update requires a filter"}
	}
	t, sch, err := s.lookup(table)
	if err != nil {
		return nil, err
	}
	values, err := s.assignments(ctx, table, t, sch, patch)
	if err != nil {
		return nil, err
	}

	var rows []Row
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := s.matchingIDs(tx, table, t, sch, where)
		if err != nil || len(ids) == 0 {
			return err
		}
		if len(values) > 0 {
			if err := tx.Model(reflect.New(t).Interface()).Where("id IN ?", ids).Updates(values).Error; err != nil {
				return s.classify("update", table, err)
			}
		}
		dest := reflect.New(reflect.SliceOf(t))
		if err := tx.Where("id IN ?", ids).Order("id").Find(dest.Interface()).Error; err != nil {
			return s.classify("update", table, err)
		}
		rows, err = toRows(dest.Elem())
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Gorm) Delete(ctx context.Context, table string, where []query.Predicate) ([]Row, error) {
	if len(where) == 0 {
		return nil, &Error{Status: http.StatusBadRequest, Message: "delete requires a filter"}
	}
	t, sch, err := s.lookup(table)
	if err != nil {
		return nil, err
	}

	var rows []Row
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped, err := s.where(tx.Model(reflect.New(t).Interface()), table, sch, where)
		if err != nil {
			return err
		}
		dest := reflect.New(reflect.SliceOf(t))
		if err := scoped.Order("id").Find(dest.Interface()).Error; err != nil {
			return s.classify("delete", table, err)
		}
		if dest.Elem().Len() == 0 {
			return nil
		}
		ids := idsOf(dest.Elem())
		if err := tx.Where("id IN ?", ids).Delete(reflect.New(t).Interface()).Error; err != nil {
			return s.classify("delete", table, err)
		}
		rows, err = toRows(dest.Elem())
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Gorm) lookup(table string) (reflect.Type, *schema.Schema, error) {
	t, ok := s.models[table]
	if !ok {
		return nil, nil, &Error{
			Status:  http.StatusNotFound,
			Code:    codeUndefinedTable,
			Message: fmt.Sprintf("relation %q does not exist", table),
		}
	}
	return t, s.schemas[table], nil
}

func (s *Gorm) where(tx *gorm.DB, table string, sch *schema.Schema, preds []query.Predicate) (*gorm.DB, error) {
	for _, p := range preds {
		if err := p.Validate(); err != nil {
			return nil, &Error{Status: http.StatusBadRequest, Message: err.Error()}
		}
		if sch.LookUpField(p.Column) == nil {
			return nil, undefinedColumn(table, p.Column)
		}
		switch p.Op {
		case query.OpEq:
			if p.Value == nil {
				tx = tx.Where(p.Column + " IS NULL")
			} else {
				tx = tx.Where(p.Column+" = ?", p.Value)
			}
		case query.OpNeq:
			tx = tx.Where(p.Column+" <> ?", p.Value)
		case query.OpGt:
			tx = tx.Where(p.Column+" > ?", p.Value)
		case query.OpGte:
			tx = tx.Where(p.Column+" >= ?", p.Value)
		case query.OpLt:
			tx = tx.Where(p.Column+" < ?", p.Value)
		case query.OpLte:
			tx = tx.Where(p.Column+" <= ?", p.Value)
		case query.OpIs:
			tx = tx.Where(p.Column + " IS NULL")
		case query.OpILike:
			term, ok := p.Value.(string)
			if !ok {
				return nil, &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf("ilike on %s needs a string", p.Column)}
			}
			tx = tx.Where("LOWER("+p.Column+") LIKE ?", "%"+strings.ToLower(term)+"%")
		case query.OpIn:
			values, ok := p.Value.([]any)
			if !ok {
				return nil, &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf("in on %s needs a list", p.Column)}
			}
			if len(values) == 0 {
				tx = tx.Where("1 = 0")
			} else {
				tx = tx.Where(p.Column+" IN ?", values)
			}
		}
	}
	return tx, nil
}

func (s *Gorm) matchingIDs(tx *gorm.DB, table string, t reflect.Type, sch *schema.Schema, where []query.Predicate) ([]any, error) {
	scoped, err := s.where(tx.Model(reflect.New(t).Interface()), table, sch, where)
	if err != nil {
		return nil, err
	}
	var ids []uint
	if err := scoped.Pluck("id", &ids).Error; err != nil {
		return nil, s.classify("select", table, err)
	}
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out, nil
}

// assignments converts a JSON-shaped patch into typed column values by
// decoding it into a scratch model and reading the named fields back.
func (s *Gorm) assignments(ctx context.Context, table string, t reflect.Type, sch *schema.Schema, patch Row) (map[string]any, error) {
	scratch := reflect.New(t)
	if err := Decode(patch, scratch.Interface()); err != nil {
		return nil, &Error{Status: http.StatusBadRequest, Message: err.Error()}
	}
	values := make(map[string]any, len(patch))
	for col := range patch {
		field := sch.LookUpField(col)
		if field == nil {
			return nil, undefinedColumn(table, col)
		}
		if field.PrimaryKey {
			return nil, &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf("column %q cannot be updated", col)}
		}
		values[field.DBName] = field.ReflectValueOf(ctx, scratch.Elem()).Interface()
	}
	return values, nil
}

func (s *Gorm) classify(op, table string, err error) error {
	se := &Error{Status: http.StatusInternalServerError, Message: err.Error(), Err: err}

	var myErr *mysql.MySQLError
	switch {
	case errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry,
		errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), sqliteUniqueFailed):
		se.Status, se.Code = http.StatusConflict, CodeUniqueViolation
	case errors.As(err, &myErr) && (myErr.Number == mysqlRowIsReferenced || myErr.Number == mysqlNoReferencedRow),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		strings.Contains(err.Error(), sqliteForeignKeyFailed):
		se.Status, se.Code = http.StatusConflict, CodeForeignKeyViolation
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		se.Status = 0
	}

	if se.Code != "" {
		s.logger.Debugw("store constraint violation", "op", op, "table", table, "code", se.Code, "error", err)
	} else {
		s.logger.Errorw("store operation failed", "op", op, "table", table, "error", err)
	}
	return se
}

func undefinedColumn(table, column string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    codeUndefinedColumn,
		Message: fmt.Sprintf("column %s.%s does not exist", table, column),
	}
}

func toRows(models reflect.Value) ([]Row, error) {
	rows := make([]Row, 0, models.Len())
	for i := 0; i < models.Len(); i++ {
		row, err := Encode(models.Index(i).Addr().Interface())
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func idsOf(models reflect.Value) []any {
	ids := make([]any, 0, models.Len())
	for i := 0; i < models.Len(); i++ {
		ids = append(ids, models.Index(i).FieldByName("ID").Interface())
	}
	return ids
}

func project(row Row, columns []string) Row {
	out := make(Row, len(columns))
	for _, c := range columns {
		if v, ok := row[c]; ok {
			out[c] = v
		}
	}
	return out
}
