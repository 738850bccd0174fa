package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPClient_Get_Success(t *testing.T) {
	// Mock server setup
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test-endpoint" {
			t.Errorf("Expected endpoint '/test-endpoint', got '%s'", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("User-Agent"); got != "test-agent/1.0" {
			t.Errorf("Expected User-Agent 'test-agent/1.0', got '%s'", got)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message": "success"}`))
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient("test-agent/1.0", time.Second)

	// Act
	body, err := client.Get(context.Background(), mockServer.URL+"/test-endpoint")

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if string(body) != `{"message": "success"}` {
		t.Errorf("Unexpected body '%s'", string(body))
	}
}

func TestHTTPClient_Get_Failure(t *testing.T) {
	// Mock server setup
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title": "Not found."}`))
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient("test-agent/1.0", time.Second)

	// Act
	body, err := client.Get(context.Background(), mockServer.URL+"/test-endpoint")

	// Assert
	if err == nil {
		t.Fatalf("Expected an error, got nil")
	}
	if body != nil {
		t.Errorf("Expected nil body, got '%s'", string(body))
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected *StatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", statusErr.StatusCode)
	}

	expectedError := "unexpected status code: 404 Not Found"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
	}
}

func TestHTTPClient_Get_TransportFailure(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := mockServer.URL
	mockServer.Close()

	client := NewHTTPClient("test-agent/1.0", time.Second)

	if _, err := client.Get(context.Background(), url); err == nil {
		t.Fatal("Expected transport error, got nil")
	}
}
