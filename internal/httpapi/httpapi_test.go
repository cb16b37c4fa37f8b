// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalzilio-labs/qmddsift/internal/config"
	"github.com/dalzilio-labs/qmddsift/internal/qmddsvc"
)

func testServer() *Server {
	cfg := config.Config{
		Optimize: config.OptimizeConfig{Scheme: "sifting", MaxRounds: 3, StableRounds: 1, Tolerance: 0},
		Log:      config.LogConfig{Level: "info", Format: "console"},
	}
	svc := qmddsvc.New(cfg)
	return New(svc, zerolog.Nop(), Options{Debug: true})
}

func TestCreateAndFetchJob(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs", strings.NewReader("qubits 2\nH 0\nCNOT 0 1\n"))
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created jobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	req2 := httptest.NewRequest(http.MethodGet, "/v1/jobs/"+created.ID, nil)
	rec2 := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusOK, rec2.Code)
}

func TestGetUnknownJobIs404(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/v1/jobs/nope", nil)
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobDotEndpoint(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs", strings.NewReader("qubits 1\nH 0\n"))
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created jobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req2 := httptest.NewRequest(http.MethodGet, "/v1/jobs/"+created.ID+"/dot", nil)
	rec2 := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Contains(t, rec2.Body.String(), "digraph")
}
