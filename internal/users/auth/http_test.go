// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/weebtsuki/internal/platform/ctxutil"
	"github.com/taibuivan/weebtsuki/internal/platform/sec"
	"github.com/taibuivan/weebtsuki/internal/users/auth"
)

func (f *fixture) serve(t *testing.T, claims *sec.AuthClaims, method, target, body string) (int, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}
	recorder := httptest.NewRecorder()
	auth.NewHandler(f.service).Routes().ServeHTTP(recorder, request)

	var payload map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	}
	return recorder.Code, payload
}

/*
TestHandler_SignUpFlow registers, verifies and logs in over HTTP.
*/
func TestHandler_SignUpFlow(t *testing.T) {
	f := newFixture()

	status, payload := f.serve(t, nil, http.MethodPost, "/register", `{"username":"reader","email":"reader@b.co","password":"correct-horse","role":"admin"}`)
	require.Equal(t, http.StatusCreated, status)
	userID := payload["data"].(map[string]any)["userId"].(string)
	assert.Equal(t, sec.RoleUser, f.users.users[userID].Role, "role cannot be chosen at sign up")

	status, payload = f.serve(t, nil, http.MethodPost, "/login", `{"email":"reader@b.co","password":"correct-horse"}`)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, auth.CodeVerificationRequired, payload["code"])

	_, otp := f.otps.only()
	status, _ = f.serve(t, nil, http.MethodPost, "/verify-otp", `{"userId":"`+userID+`","otp":"`+otp+`"}`)
	require.Equal(t, http.StatusOK, status)

	status, payload = f.serve(t, nil, http.MethodPost, "/login", `{"email":"reader@b.co","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, status)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "Bearer", data["tokenType"])
	assert.NotContains(t, data["user"], "passwordHash")

	status, _ = f.serve(t, nil, http.MethodPost, "/register", `{"username":"again","email":"reader@b.co","password":"correct-horse"}`)
	assert.Equal(t, http.StatusConflict, status)
}

func TestHandler_ProtectedRoutes(t *testing.T) {
	f := newFixture()
	user := f.registerVerified(t, "reader@b.co")
	claims := &sec.AuthClaims{UserID: user.ID, Username: user.Username, Role: string(user.Role)}

	status, _ := f.serve(t, nil, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, payload := f.serve(t, claims, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "reader@b.co", payload["data"].(map[string]any)["email"])

	status, _ = f.serve(t, claims, http.MethodPost, "/change-password", `{"currentPassword":"nope-nope","newPassword":"next-secret"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.serve(t, claims, http.MethodPost, "/change-password", `{"generateNew":true}`)
	assert.Equal(t, http.StatusOK, status)
}

func TestHandler_BadJSON(t *testing.T) {
	f := newFixture()

	for _, target := range []string{"/register", "/login", "/verify-otp", "/reset-password"} {
		status, _ := f.serve(t, nil, http.MethodPost, target, `{`)
		assert.Equal(t, http.StatusBadRequest, status, target)
	}
}
