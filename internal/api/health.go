// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/weebtsuki/internal/platform/apperr"
	"github.com/taibuivan/weebtsuki/internal/platform/constants"
	"github.com/taibuivan/weebtsuki/internal/platform/respond"
)

// # Health Checks

// DependencyCheck pings one backing service.
type DependencyCheck struct {
	Name  string
	Check func(context context.Context) error
}

// HealthDependencies holds the checks run by the /ready endpoint.
type HealthDependencies struct {
	Checks []DependencyCheck

	// Timeout bounds each check. Zero means [constants.ReadinessCheckTimeout].
	Timeout time.Duration
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready handlers.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	if deps.Timeout <= 0 {
		deps.Timeout = constants.ReadinessCheckTimeout
	}
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

/*
readiness handles GET /ready.

Response:
  - 200: {status: "ready", checks}
  - 503: SERVICE_UNAVAILABLE error, one detail per failed dependency
*/
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, len(handler.dependencies.Checks))
	var failed []string
	var details []apperr.FieldError

	for _, dependency := range handler.dependencies.Checks {
		result := handler.run(request.Context(), dependency)
		results = append(results, result)
		if !result.IsOK {
			failed = append(failed, result.Name)
			details = append(details, apperr.FieldError{Field: result.Name, Message: result.Error})
		}
	}

	if len(failed) > 0 {
		appError := apperr.ServiceUnavailable("Unavailable dependencies: " + strings.Join(failed, ", "))
		appError.Details = details
		respond.Error(writer, request, appError)
		return
	}

	respond.OK(writer, map[string]any{
		constants.FieldStatus: "ready",
		"checks":              results,
	})
}

func (handler *healthHandler) run(parent context.Context, dependency DependencyCheck) checkResult {
	context, cancel := context.WithTimeout(parent, handler.dependencies.Timeout)
	defer cancel()

	result := checkResult{Name: dependency.Name, IsOK: true}
	if err := dependency.Check(context); err != nil {
		result.IsOK = false
		result.Error = err.Error()
		handler.logger.ErrorContext(context, "readiness_check_failed",
			slog.String("dependency", dependency.Name),
			slog.Any("error", err),
		)
	}
	return result
}
