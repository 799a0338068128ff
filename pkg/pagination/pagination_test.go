// Copyright (c) 2026 Namira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/namira/pkg/pagination"
)

/*
TestPagination_Offset verifies the page → SQL OFFSET derivation.
*/
func TestPagination_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
}

/*
TestPagination_NewMeta verifies total page calculation, including the
partial-last-page rounding.
*/
func TestPagination_NewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 41)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, 41, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}

/*
TestPagination_FromRequest verifies query parsing and clamping behavior.
*/
func TestPagination_FromRequest(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		expectedPage  int
		expectedLimit int
	}{
		{"defaults", "/names", pagination.DefaultPage, pagination.DefaultLimit},
		{"explicit values", "/names?page=3&limit=50", 3, 50},
		{"negative page clamped", "/names?page=-1", pagination.DefaultPage, pagination.DefaultLimit},
		{"excessive limit clamped", "/names?limit=9000", pagination.DefaultPage, pagination.DefaultLimit},
		{"garbage ignored", "/names?page=abc&limit=xyz", pagination.DefaultPage, pagination.DefaultLimit},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", testCase.url, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, testCase.expectedPage, params.Page)
			assert.Equal(t, testCase.expectedLimit, params.Limit)
		})
	}
}
