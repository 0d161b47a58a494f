package dto_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"boda/shared/constant"
	"boda/shared/dto"
	"boda/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	if metadata.CreatedBy != "creator" {
		t.Errorf("expected CreatedBy to be 'creator', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "modifier" {
		t.Errorf("expected ModifiedBy to be 'modifier', got %s", metadata.ModifiedBy)
	}

	if metadata.CreatedAt == "" || metadata.ModifiedAt == "" {
		t.Error("expected formatted timestamps, got empty strings")
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "name",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "name",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    0,
				Limit:   0,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with lowercase sort direction",
			queryParams: map[string]string{
				"sort_dir": "desc",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				SortDir: "DESC",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for key, value := range tt.queryParams {
				values.Set(key, value)
			}

			req := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}

			q := dto.QueryParams{}
			q.FromRequest(req, tt.defaultRequest)

			if q != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, q)
			}
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name       string
		filter     dto.Filter
		wantClause string
		wantArg    any
	}{
		{
			name: "equality filter",
			filter: dto.Filter{
				Field:    "attending",
				Value:    true,
				Operator: dto.FilterOperatorEq,
				Table:    "guests",
			},
			wantClause: "guests.attending = :attending",
			wantArg:    true,
		},
		{
			name: "like filter wraps value in wildcards",
			filter: dto.Filter{
				Field:    "name",
				Value:    "Garc",
				Operator: dto.FilterOperatorLike,
			},
			wantClause: "LOWER(name) LIKE LOWER(:name)",
			wantArg:    "%Garc%",
		},
		{
			name: "is null filter",
			filter: dto.Filter{
				Field:    "table_id",
				Operator: dto.FilterIsNull,
				Table:    "guests",
			},
			wantClause: "guests.table_id IS NULL",
			wantArg:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.GetWhereClause()

			if strings.TrimSpace(clause) != tt.wantClause {
				t.Errorf("expected clause %q, got %q", tt.wantClause, strings.TrimSpace(clause))
			}

			if tt.wantArg != nil {
				argName := tt.filter.Field
				if args[argName] != tt.wantArg {
					t.Errorf("expected arg %v, got %v", tt.wantArg, args[argName])
				}
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "attending",
				Value:    true,
				Operator: dto.FilterOperatorEq,
			},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "search_name", Field: "name", Value: "ana", Operator: dto.FilterOperatorLike},
					dto.Filter{ArgName: "search_email", Field: "email", Value: "ana", Operator: dto.FilterOperatorLike},
				},
			},
		},
	}

	clause, args := group.GetWhereClause()

	if !strings.Contains(clause, "AND") {
		t.Errorf("expected outer group joined by AND, got %q", clause)
	}

	if !strings.Contains(clause, "OR") {
		t.Errorf("expected nested group joined by OR, got %q", clause)
	}

	if len(args) != 3 {
		t.Errorf("expected 3 args, got %d (%v)", len(args), args)
	}

	empty := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	clause, _ = empty.GetWhereClause()
	if clause != "" {
		t.Errorf("expected empty clause for empty group, got %q", clause)
	}
}
