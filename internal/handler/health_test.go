package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakePinger struct {
	err      error
	deadline bool
}

func (p *fakePinger) Ping(ctx context.Context) error {
	_, p.deadline = ctx.Deadline()
	return p.err
}

func TestHealthHandler_Check_OK(t *testing.T) {
	pinger := &fakePinger{}
	h := NewHealthHandler(pinger)

	rr := httptest.NewRecorder()
	h.Check(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !pinger.deadline {
		t.Error("expected ping to run with a deadline")
	}
}

func TestHealthHandler_Check_StoreDown(t *testing.T) {
	h := NewHealthHandler(&fakePinger{err: errors.New("dial tcp: connection refused")})

	rr := httptest.NewRecorder()
	h.Check(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	if got := errorMessage(t, rr); got != "Service unavailable" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestHealthHandler_Check_CanceledRequest(t *testing.T) {
	h := NewHealthHandler(&fakePinger{err: context.Canceled})

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(ctx)

	rr := httptest.NewRecorder()
	h.Check(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
