package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestSend(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := New(Config{
		ServiceID:  "service_1",
		TemplateID: "template_1",
		PublicKey:  "pub",
		PrivateKey: "priv",
	}, srv.Client(), zap.NewNop())
	m.endpoint = srv.URL

	err := m.Send(context.Background(), map[string]string{"to_email": "a@b.c"})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if got.ServiceID != "service_1" || got.UserID != "pub" || got.AccessToken != "priv" {
		t.Errorf("unexpected request: %+v", got)
	}
	if got.TemplateParams["to_email"] != "a@b.c" {
		t.Errorf("template params: %+v", got.TemplateParams)
	}
}

func TestSend_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer srv.Close()

	m := New(Config{ServiceID: "s", TemplateID: "t", PublicKey: "p"}, srv.Client(), zap.NewNop())
	m.endpoint = srv.URL

	if err := m.Send(context.Background(), nil); err == nil {
		t.Error("expected error on 403 response")
	}
}

func TestSend_NotConfigured(t *testing.T) {
	m := New(Config{}, nil, zap.NewNop())
	if err := m.Send(context.Background(), nil); err == nil {
		t.Error("expected error when mailer is not configured")
	}
}
