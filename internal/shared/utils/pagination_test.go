package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/shared/errors"
	"hotelops/internal/shared/query"
)

func testContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestParseSkipLimit(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    query.PageFilter
		wantErr bool
	}{
		{name: "defaults", target: "/rooms", want: query.PageFilter{Skip: 0, Limit: query.DefaultLimit}},
		{name: "explicit", target: "/rooms?skip=20&limit=10", want: query.PageFilter{Skip: 20, Limit: 10}},
		{name: "limit capped", target: "/rooms?limit=50000", want: query.PageFilter{Limit: query.MaxLimit}},
		{name: "negative skip", target: "/rooms?skip=-1", wantErr: true},
		{name: "zero limit", target: "/rooms?limit=0", wantErr: true},
		{name: "not a number", target: "/rooms?limit=ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSkipLimit(testContext(tt.target))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := testContext("/rooms/" + tt.raw)
			c.Params = gin.Params{{Key: "id", Value: tt.raw}}
			got, err := ParseIDParam(c, "id")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
