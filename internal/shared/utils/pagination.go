package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelops/internal/shared/errors"
	"hotelops/internal/shared/query"
)

// ParseSkipLimit reads the skip and limit query parameters. Missing values
// fall back to 0 and query.DefaultLimit; limit is capped at query.MaxLimit.
func ParseSkipLimit(c *gin.Context) (query.PageFilter, error) {
	skip, err := parseQueryInt(c, "skip", 0)
	if err != nil {
		return query.PageFilter{}, err
	}
	limit, err := parseQueryInt(c, "limit", query.DefaultLimit)
	if err != nil {
		return query.PageFilter{}, err
	}
	if skip < 0 {
		return query.PageFilter{}, errors.NewValidationError("skip must not be negative")
	}
	if limit < 1 {
		return query.PageFilter{}, errors.NewValidationError("limit must be at least 1")
	}
	if limit > query.MaxLimit {
		limit = query.MaxLimit
	}
	return query.PageFilter{Skip: skip, Limit: limit}, nil
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) (int, error) {
	val := c.Query(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("%s must be an integer", key), val)
	}
	return n, nil
}

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s", name), raw)
	}
	return uint(id), nil
}
