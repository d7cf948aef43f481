package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageFilter(t *testing.T) {
	tests := []struct {
		name       string
		filter     PageFilter
		wantOffset int
		wantSize   int
	}{
		{"zero value", PageFilter{}, 0, DefaultLimit},
		{"negative skip", PageFilter{Skip: -5, Limit: 10}, 0, 10},
		{"explicit", PageFilter{Skip: 20, Limit: 10}, 20, 10},
		{"capped", PageFilter{Limit: 5000}, 0, MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOffset, tt.filter.Offset())
			assert.Equal(t, tt.wantSize, tt.filter.Size())
		})
	}
}

func TestNew(t *testing.T) {
	q := New(
		Where(Eq("floor", 2), ILike("full_name", "ann")),
		OrderBy(Desc("created_at")),
		WithPage(PageFilter{Skip: 10, Limit: 5}),
		Columns("id", "room_number"),
	)

	assert.Len(t, q.Where, 2)
	assert.Equal(t, OpILike, q.Where[1].Op)
	assert.Equal(t, []Order{{Column: "created_at", Desc: true}}, q.Order)
	assert.Equal(t, 10, q.Offset)
	assert.Equal(t, 5, q.Limit)
	assert.NoError(t, q.Validate())
}

func TestIn(t *testing.T) {
	p := In("id", []uint{1, 2})
	assert.Equal(t, OpIn, p.Op)
	assert.Equal(t, []any{uint(1), uint(2)}, p.Value)
}

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Query
		wantErr bool
	}{
		{"valid", New(Where(IsNull("assigned_to"))), false},
		{"injected column", New(Where(Eq("id; drop table rooms", 1))), true},
		{"bad operator", Query{Where: []Predicate{{Column: "id", Op: "like"}}}, true},
		{"bad order", New(OrderBy(Asc("Room Number"))), true},
		{"bad select", New(Columns("*")), true},
		{"negative limit", Query{Limit: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
