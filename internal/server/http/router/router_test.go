package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/minegram/minegram/internal/server/http/handlers"
	testhelpers "github.com/minegram/minegram/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.MiningAppFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{},
		MiningFacadeStub: testhelpers.MiningFacadeStub{
			StatusFn: func(context.Context, int64) (float64, error) { return 230, nil },
		},
		WithdrawFacadeStub: testhelpers.WithdrawFacadeStub{},
	}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]any{"tg_id": 7, "username": "miner"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for login, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/mining/status", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for mining status, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/withdraw/coins", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/withdraw", bytes.NewReader(mustJSON(t, map[string]any{"coin": "TRX", "amount": 150, "email": "m@example.com"})))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for withdraw, got %d", resp.Code)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return data
}

var _ handlers.AppFacade = (*testhelpers.MiningAppFacadeStub)(nil)
