package utils

import (
	"net/url"
	"strconv"
	"strings"

	"checksheet-system/pkg/types"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParseFilterFromQuery turns ?search=&sort[col]=dir&filter[col]=v&page=&limit=
// into a types.Filter. Unknown keys are carried as-is; repositories map
// them against their own allow-lists.
func ParseFilterFromQuery(query url.Values) types.Filter {
	filter := types.Filter{
		Sort:           make(map[string]string),
		Filter:         make(map[string]interface{}),
		Limit:          DefaultLimit,
		Page:           1,
		WithPagination: true,
	}

	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		switch {
		case strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]"):
			filter.Filter[key[7:len(key)-1]] = values[0]
		case strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]"):
			filter.Sort[key[5:len(key)-1]] = values[0]
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				l = MaxLimit
			}
			filter.Limit = l
		}
	}
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filter.Page = p
		}
	}
	filter.Offset = (filter.Page - 1) * filter.Limit

	// offset overrides the page-derived one when given explicitly
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
			if filter.Limit > 0 {
				filter.Page = o/filter.Limit + 1
			}
		}
	}

	filter.Search = query.Get("search")

	return filter
}
