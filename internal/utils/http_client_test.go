package utils

import (
	"testing"
	"time"
)

func TestNewHTTPClient(t *testing.T) {
	client1 := NewHTTPClient("http://127.0.0.1:8080", 5*time.Second)
	client2 := NewHTTPClient("http://127.0.0.1:8080", 0)

	if client1.Client == nil || client2.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil")
	}
	if client1.Client == client2.Client {
		t.Fatal("expected independent *resty.Client instances")
	}
	if client1.BaseURL != "http://127.0.0.1:8080" {
		t.Errorf("unexpected base URL %q", client1.BaseURL)
	}
	if got := client1.Header.Get("Accept"); got != "application/json" {
		t.Errorf("unexpected Accept header %q", got)
	}
	if client2.GetClient().Timeout != 0 {
		t.Errorf("expected no timeout, got %s", client2.GetClient().Timeout)
	}
}
