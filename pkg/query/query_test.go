// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/weebtsuki/pkg/query"
)

func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Equal(t, []string{"Action", "Slice of life"}, query.StringSlice(" Action, ,Slice of life "))
}

func TestValues(t *testing.T) {
	values := url.Values{"genres": {"Action,Drama", "Drama", "Isekai"}}

	assert.Equal(t, []string{"Action", "Drama", "Isekai"}, query.Values(values, "genres"))
	assert.Nil(t, query.Values(values, "missing"))
}
