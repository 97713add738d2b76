package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return values
}

func TestParseFilterFromQueryDefaults(t *testing.T) {
	filter := ParseFilterFromQuery(parseQuery(t, ""))

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 0, filter.Offset)
	assert.True(t, filter.WithPagination)
	assert.Empty(t, filter.Filter)
}

func TestParseFilterFromQueryPagination(t *testing.T) {
	filter := ParseFilterFromQuery(parseQuery(t, "page=2&limit=10"))

	assert.Equal(t, 10, filter.Limit)
	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, 10, filter.Offset, "page 2 with limit 10 starts at row 10")
}

func TestParseFilterFromQueryLimitCap(t *testing.T) {
	filter := ParseFilterFromQuery(parseQuery(t, "limit=5000"))
	assert.Equal(t, MaxLimit, filter.Limit)
}

func TestParseFilterFromQueryExplicitOffset(t *testing.T) {
	filter := ParseFilterFromQuery(parseQuery(t, "offset=25&limit=10"))

	assert.Equal(t, 25, filter.Offset)
	assert.Equal(t, 3, filter.Page, "page derived back from the offset")
}

func TestParseFilterFromQueryFilterAndSort(t *testing.T) {
	filter := ParseFilterFromQuery(parseQuery(t, "filter[status]=pending&filter[model_id]=4&sort[created_at]=desc&search=DIR-2025"))

	assert.Equal(t, "pending", filter.Filter["status"])
	assert.Equal(t, "4", filter.Filter["model_id"])
	assert.Equal(t, "desc", filter.Sort["created_at"])
	assert.Equal(t, "DIR-2025", filter.Search)
}

func TestParseFilterFromQueryIgnoresJunk(t *testing.T) {
	filter := ParseFilterFromQuery(parseQuery(t, "page=-1&limit=abc&filter[=x"))

	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Empty(t, filter.Filter)
}
