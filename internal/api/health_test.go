// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

/*
TestReadiness reports every configured dependency and degrades on failure.
*/
func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name           string
		dependencies   HealthDependencies
		expectedStatus int
		expectedState  string
		expectedChecks int
	}{
		{"all_healthy", HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK, "ready", 2},
		{"without_redis", HealthDependencies{CheckDatabase: healthy}, http.StatusOK, "ready", 1},
		{"database_down", HealthDependencies{CheckDatabase: broken, CheckCache: healthy}, http.StatusServiceUnavailable, "degraded", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := NewHealthHandlers(tt.dependencies, discardLogger)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.expectedStatus, recorder.Code)

			var body struct {
				Data struct {
					Status string        `json:"status"`
					Checks []checkResult `json:"checks"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedState, body.Data.Status)
			assert.Len(t, body.Data.Checks, tt.expectedChecks)
		})
	}
}

/*
TestLiveness always answers 200.
*/
func TestLiveness(t *testing.T) {
	liveness, _ := NewHealthHandlers(HealthDependencies{}, discardLogger)

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
}
