package payout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainErrors "github.com/minegram/minegram/internal/domain/errors"
	"github.com/minegram/minegram/internal/domain/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sampleWithdrawal() model.Withdrawal {
	return model.Withdrawal{
		ID:     1,
		TgID:   42,
		Coin:   "TRX",
		Amount: 150,
		Email:  "miner@example.com",
		Status: model.WithdrawalStatusPending,
	}
}

func TestNewHTTPClientValidation(t *testing.T) {
	if _, err := NewHTTPClient(":://bad", "key", discardLogger()); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := NewHTTPClient("relative/path", "key", discardLogger()); err == nil {
		t.Fatal("expected absolute url error")
	}
	if _, err := NewHTTPClient("https://payout.example", "key", discardLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSubmitSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/api/v1/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.APIKey != "key" || req.Currency != "TRX" || req.To != "miner@example.com" {
			t.Errorf("unexpected payload %+v", req)
		}
		if req.Amount != "150" {
			t.Errorf("unexpected amount %q", req.Amount)
		}
		_ = json.NewEncoder(w).Encode(response{Status: 200, Message: "OK", PayoutID: "fp-123"})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "key", discardLogger())
	if err != nil {
		t.Fatalf("client creation failed: %v", err)
	}

	ref, err := client.Submit(context.Background(), sampleWithdrawal())
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}
	if ref != "fp-123" {
		t.Fatalf("unexpected reference %q", ref)
	}
}

func TestSubmitMissingPayoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(response{Status: 456, Message: "invalid currency"})
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, "key", discardLogger())
	if _, err := client.Submit(context.Background(), sampleWithdrawal()); err == nil {
		t.Fatal("expected rejection error")
	}
}

func TestSubmitUnavailableStatuses(t *testing.T) {
	for _, status := range []int{http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusBadGateway} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client, _ := NewHTTPClient(server.URL, "key", discardLogger())
		_, err := client.Submit(context.Background(), sampleWithdrawal())
		server.Close()
		if !errors.Is(err, domainErrors.ErrPayoutUnavailable) {
			t.Fatalf("status %d: expected ErrPayoutUnavailable, got %v", status, err)
		}
	}
}

func TestSubmitUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client, _ := NewHTTPClient(server.URL, "key", discardLogger())
	_, err := client.Submit(context.Background(), sampleWithdrawal())
	if err == nil || errors.Is(err, domainErrors.ErrPayoutUnavailable) {
		t.Fatalf("expected distinct error for 403, got %v", err)
	}
}

func TestSubmitConnectionErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, _ := NewHTTPClient(server.URL, "key", discardLogger())
	_, err := client.Submit(context.Background(), sampleWithdrawal())
	if !errors.Is(err, domainErrors.ErrPayoutUnavailable) {
		t.Fatalf("expected ErrPayoutUnavailable on connection failure, got %v", err)
	}
}

func TestDisabledProvider(t *testing.T) {
	_, err := Disabled{}.Submit(context.Background(), sampleWithdrawal())
	if !errors.Is(err, domainErrors.ErrPayoutUnavailable) {
		t.Fatalf("expected ErrPayoutUnavailable, got %v", err)
	}
}
