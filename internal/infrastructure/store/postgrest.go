package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"hotelops/internal/shared/config"
	"hotelops/internal/shared/logger"
	"hotelops/internal/shared/query"
)

// PostgREST talks to a PostgREST-compatible REST endpoint such as the one in
// front of a hosted Postgres project.
type PostgREST struct {
	client *resty.Client
	schema string
	logger logger.Interface
}

// NewPostgREST builds a client for cfg.URL. Only reads are retried; writes
// are sent once.
func NewPostgREST(cfg *config.StoreConfig, log logger.Interface) *PostgREST {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(cfg.Timeout()).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
				return false
			}
			return err != nil || resp.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if cfg.APIKey != "" {
		client.SetHeader("apikey", cfg.APIKey).SetAuthToken(cfg.APIKey)
	}

	return &PostgREST{
		client: client,
		schema: cfg.Schema,
		logger: log.Named("postgrest"),
	}
}

func (s *PostgREST) Select(ctx context.Context, table string, q query.Query) ([]Row, error) {
	if err := q.Validate(); err != nil {
		return nil, &Error{Status: http.StatusBadRequest, Message: err.Error()}
	}

	params, err := filterParams(q.Where)
	if err != nil {
		return nil, err
	}
	if len(q.Columns) > 0 {
		params.Set("select", strings.Join(q.Columns, ","))
	} else {
		params.Set("select", "*")
	}
	if len(q.Order) > 0 {
		parts := make([]string, len(q.Order))
		for i, o := range q.Order {
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			parts[i] = o.Column + "." + dir
		}
		params.Set("order", strings.Join(parts, ","))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	return s.do(ctx, http.MethodGet, table, params, nil)
}

func (s *PostgREST) Insert(ctx context.Context, table string, row Row) (Row, error) {
	rows, err := s.do(ctx, http.MethodPost, table, nil, row)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &Error{Status: http.StatusInternalServerError, Message: "insert returned no representation"}
	}
	return rows[0], nil
}

func (s *PostgREST) Update(ctx context.Context, table string, where []query.Predicate, patch Row) ([]Row, error) {
	if len(where) == 0 {
		return nil, &Error{Status: http.StatusBadRequest, Message: "update requires a filter"}
	}
	params, err := filterParams(where)
	if err != nil {
		return nil, err
	}
	return s.do(ctx, http.MethodPatch, table, params, patch)
}

func (s *PostgREST) Delete(ctx context.Context, table string, where []query.Predicate) ([]Row, error) {
	if len(where) == 0 {
		return nil, &Error{Status: http.StatusBadRequest, Message: "delete requires a filter"}
	}
	params, err := filterParams(where)
	if err != nil {
		return nil, err
	}
	return s.do(ctx, http.MethodDelete, table, params, nil)
}

func (s *PostgREST) do(ctx context.Context, method, table string, params url.Values, body any) ([]Row, error) {
	if !query.ValidColumn(table) {
		return nil, &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf("invalid table %q", table)}
	}

	var rows []Row
	var apiErr Error
	req := s.client.R().
		SetContext(ctx).
		SetResult(&rows).
		SetError(&apiErr)
	if params != nil {
		req.SetQueryParamsFromValues(params)
	}
	if method != http.MethodGet {
		req.SetHeader("Prefer", "return=representation")
	}
	if s.schema != "" && s.schema != "public" {
		if method == http.MethodGet {
			req.SetHeader("Accept-Profile", s.schema)
		} else {
			req.SetHeader("Content-Profile", s.schema)
		}
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, "/"+table)
	if err != nil {
		s.logger.Errorw("store request failed", "method", method, "table", table, "error", err)
		return nil, &Error{Err: err}
	}
	if resp.IsError() {
		apiErr.Status = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(resp.String())
		}
		if apiErr.Message == "" {
			apiErr.Message = resp.Status()
		}
		s.logger.Warnw("store request rejected",
			"method", method,
			"table", table,
			"status", apiErr.Status,
			"code", apiErr.Code,
			"message", apiErr.Message,
		)
		return nil, &apiErr
	}

	s.logger.Debugw("store request completed", "method", method, "table", table, "rows", len(rows), "elapsed", resp.Time())
	return rows, nil
}

// filterParams renders predicates as PostgREST column=op.value parameters.
// Repeated columns are sent as repeated parameters, which PostgREST ANDs.
func filterParams(where []query.Predicate) (url.Values, error) {
	params := url.Values{}
	for _, p := range where {
		if err := p.Validate(); err != nil {
			return nil, &Error{Status: http.StatusBadRequest, Message: err.Error()}
		}
		expr, err := filterExpr(p)
		if err != nil {
			return nil, &Error{Status: http.StatusBadRequest, Message: err.Error()}
		}
		params.Add(p.Column, expr)
	}
	return params, nil
}

func filterExpr(p query.Predicate) (string, error) {
	switch p.Op {
	case query.OpIs:
		return "is.null", nil
	case query.OpILike:
		term, ok := p.Value.(string)
		if !ok {
			return "", fmt.Errorf("ilike on %s needs a string", p.Column)
		}
		return "ilike.*" + term + "*", nil
	case query.OpIn:
		values, ok := p.Value.([]any)
		if !ok {
			return "", fmt.Errorf("in on %s needs a list", p.Column)
		}
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = quoteListItem(formatValue(v))
		}
		return "in.(" + strings.Join(parts, ",") + ")", nil
	case query.OpEq:
		if p.Value == nil {
			return "is.null", nil
		}
	}
	return string(p.Op) + "." + formatValue(p.Value), nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if val == nil {
			return "null"
		}
		return val.UTC().Format(time.RFC3339Nano)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// quoteListItem double-quotes values that contain PostgREST list delimiters.
func quoteListItem(s string) string {
	if !strings.ContainsAny(s, `,()" `) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
