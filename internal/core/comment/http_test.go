// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/weebtsuki/internal/core/comment"
	"github.com/taibuivan/weebtsuki/internal/platform/ctxutil"
	"github.com/taibuivan/weebtsuki/internal/platform/sec"
)

func newRouter(service *comment.Service) http.Handler {
	handler := comment.NewHandler(service)

	router := chi.NewRouter()
	router.Mount("/blogs/{blogID}/comments", handler.BlogRoutes())
	router.Mount("/comments", handler.Routes())
	return router
}

func serve(t *testing.T, router http.Handler, claims *sec.AuthClaims, method, target, body string) (int, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var payload map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	}
	return recorder.Code, payload
}

func TestHandler_CommentLifecycle(t *testing.T) {
	service, _, _ := newService()
	router := newRouter(service)

	status, _ := serve(t, router, nil, http.MethodPost, "/blogs/berserk/comments", `{"content":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, payload := serve(t, router, reader, http.MethodPost, "/blogs/berserk/comments", `{"content":"Struggler"}`)
	require.Equal(t, http.StatusCreated, status)
	created := payload["data"].(map[string]any)
	assert.Equal(t, "reader", created["user"].(map[string]any)["username"])
	commentID := created["id"].(string)

	status, payload = serve(t, router, nil, http.MethodGet, "/blogs/"+blogID+"/comments", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, payload["data"], 1)

	status, _ = serve(t, router, other, http.MethodDelete, "/comments/"+commentID, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = serve(t, router, reader, http.MethodDelete, "/comments/"+commentID, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = serve(t, router, reader, http.MethodDelete, "/comments/"+commentID, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandler_BadRequests(t *testing.T) {
	service, _, _ := newService()
	router := newRouter(service)

	status, _ := serve(t, router, reader, http.MethodPost, "/blogs/berserk/comments", `{"content":"  "}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = serve(t, router, reader, http.MethodPost, "/blogs/berserk/comments", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = serve(t, router, nil, http.MethodGet, "/blogs/missing/comments", "")
	assert.Equal(t, http.StatusNotFound, status)
}
