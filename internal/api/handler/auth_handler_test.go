package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/nimbusworks/user-directory/internal/api/handler"
	"github.com/nimbusworks/user-directory/internal/core/domain"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (string, error) {
			if username != "alice" || password != "secret1" {
				t.Fatalf("credentials not forwarded: %s/%s", username, password)
			}
			return "signed.jwt.token", nil
		},
	}
	h := handler.NewAuthHandler(stub)

	rec, c := doJSON(e, http.MethodPost, "/login", `{"username":"alice","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "signed.jwt.token" || resp["token_type"] != "bearer" {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
	if _, enveloped := resp["response_status"]; enveloped {
		t.Fatalf("login response must not be enveloped: %+v", resp)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	h := handler.NewAuthHandler(stub)

	rec, c := doJSON(e, http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, error) {
			t.Fatalf("service should not be reached")
			return "", nil
		},
	}
	h := handler.NewAuthHandler(stub)

	rec, c := doJSON(e, http.MethodPost, "/login", `{"username":"alice"}`)
	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
