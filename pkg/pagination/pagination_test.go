// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/weebtsuki/pkg/pagination"
)

/*
TestFromRequest covers defaults, explicit values, capping and rejected input.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    pagination.Params
		wantErr error
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: 10}, nil},
		{"explicit", "?page=3&limit=25", pagination.Params{Page: 3, Limit: 25}, nil},
		{"page_zero", "?page=0", pagination.Params{}, pagination.ErrInvalidPage},
		{"page_negative", "?page=-2", pagination.Params{}, pagination.ErrInvalidPage},
		{"page_garbage", "?page=two", pagination.Params{}, pagination.ErrInvalidPage},
		{"limit_zero", "?limit=0", pagination.Params{}, pagination.ErrInvalidLimit},
		{"limit_negative", "?limit=-1", pagination.Params{}, pagination.ErrInvalidLimit},
		{"limit_capped", "?limit=101", pagination.Params{Page: 1, Limit: pagination.MaxLimit}, nil},
		{"limit_at_max", "?page=2&limit=100", pagination.Params{Page: 2, Limit: 100}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := pagination.FromRequest(httptest.NewRequest("GET", "/blogs"+tt.query, nil))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, params)
		})
	}
}

/*
TestNewMeta checks page counts and the hasNext flag.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name     string
		params   pagination.Params
		returned int
		total    int
		want     pagination.Meta
	}{
		{"middle_page", pagination.Params{Page: 2, Limit: 5}, 5, 12, pagination.Meta{Current: 2, Total: 3, HasNext: true, TotalItems: 12}},
		{"last_page", pagination.Params{Page: 3, Limit: 5}, 2, 12, pagination.Meta{Current: 3, Total: 3, HasNext: false, TotalItems: 12}},
		{"exact_fit", pagination.Params{Page: 2, Limit: 5}, 5, 10, pagination.Meta{Current: 2, Total: 2, HasNext: false, TotalItems: 10}},
		{"empty", pagination.Params{Page: 1, Limit: 10}, 0, 0, pagination.Meta{Current: 1, Total: 0, HasNext: false, TotalItems: 0}},
		{"past_end", pagination.Params{Page: 9, Limit: 10}, 0, 4, pagination.Meta{Current: 9, Total: 1, HasNext: false, TotalItems: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.NewMeta(tt.params, tt.returned, tt.total))
		})
	}
}
