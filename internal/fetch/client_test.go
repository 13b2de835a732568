package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestFetchUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user_id"); got != "u1" {
			t.Errorf("user_id = %q, want u1", got)
		}
		w.Write([]byte(`{"records": []}`))
	}))
	defer srv.Close()

	body, err := NewClient(srv.URL).FetchUpdates(context.Background(), "u1")
	if err != nil {
		t.Fatalf("FetchUpdates() error = %v", err)
	}
	if string(body) != `{"records": []}` {
		t.Errorf("body = %q", body)
	}
}

func TestFetchUpdatesRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).FetchUpdates(context.Background(), "u1"); err != nil {
		t.Fatalf("FetchUpdates() error = %v after retryable failures", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("upstream called %d times, want 3", got)
	}
}

func TestFetchUpdatesClientErrorIsPermanent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).FetchUpdates(context.Background(), "u1"); err == nil {
		t.Fatal("FetchUpdates() expected error for 403")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("upstream called %d times for a 403, want 1", got)
	}
}

func TestSubmitInstall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).SubmitInstall(context.Background(), []byte(`{"action":"install"}`)); err != nil {
		t.Fatalf("SubmitInstall() error = %v", err)
	}
}

func TestSubmitInstallRejectsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).SubmitInstall(context.Background(), nil); err == nil {
		t.Fatal("SubmitInstall() expected error for 500")
	}
}
