package shared_test

import (
	"reflect"
	"testing"
	"time"

	"denta/shared"
	"denta/shared/constant"
	"denta/shared/dto"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "valid true string", input: "true", expected: boolPtr(true)},
		{name: "valid false string", input: "false", expected: boolPtr(false)},
		{name: "valid 1 string", input: "1", expected: boolPtr(true)},
		{name: "valid 0 string", input: "0", expected: boolPtr(false)},
		{name: "invalid string returns nil", input: "invalid", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else {
				if result == nil {
					t.Errorf("expected %v, got nil", *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("expected %v, got %v", *tt.expected, *result)
				}
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 10, limit: 0, expected: 1},
		{name: "exact division", total: 20, limit: 10, expected: 2},
		{name: "partial last page", total: 21, limit: 10, expected: 3},
		{name: "single page", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.CalculateTotalPage(tt.total, tt.limit); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Name  string `db:"name"`
		Price int    `db:"price"`
		Note  string `db:"-"`
	}

	fields := shared.TransformFields(updateRequest{Name: "Braces", Price: 300}, "admin@example.com")

	if fields["name"] != "Braces" {
		t.Errorf("expected name to be transformed, got %v", fields["name"])
	}

	if fields["price"] != 300 {
		t.Errorf("expected price to be transformed, got %v", fields["price"])
	}

	if fields[constant.FieldModifiedBy] != "admin@example.com" {
		t.Errorf("expected modified_by to be set, got %v", fields[constant.FieldModifiedBy])
	}

	if _, ok := fields[constant.FieldModifiedAt].(time.Time); !ok {
		t.Error("expected modified_at to be a time.Time")
	}
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("u-1", "id", "users")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "u-1",
				Operator: dto.FilterOperatorEq,
				Table:    "users",
			},
		},
	}

	if !reflect.DeepEqual(filter, expected) {
		t.Errorf("expected %+v, got %+v", expected, filter)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := shared.BuildCacheKey("treatment:gets"); got != "treatment:gets" {
		t.Errorf("expected bare prefix, got %s", got)
	}

	if got := shared.BuildCacheKey("treatment:gets", "a", "b"); got != "treatment:gets:a:b" {
		t.Errorf("expected joined key, got %s", got)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	paramsA := dto.QueryParams{Page: 1, Limit: 10}
	paramsB := dto.QueryParams{Page: 2, Limit: 10}

	keyA := shared.BuildCacheKeyWithQuery("treatment:gets", paramsA, dto.FilterGroup{})
	keyB := shared.BuildCacheKeyWithQuery("treatment:gets", paramsB, dto.FilterGroup{})
	keyA2 := shared.BuildCacheKeyWithQuery("treatment:gets", paramsA, dto.FilterGroup{})

	if keyA == keyB {
		t.Error("expected distinct queries to land on distinct keys")
	}

	if keyA != keyA2 {
		t.Error("expected the same query to land on the same key")
	}
}
