package util

import (
	"os"
	"path/filepath"
	"testing"
)

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestReadPageviewResponseFromJSON(t *testing.T) {
	// Arrange
	content := `{
		"items": [
			{"article": "Go", "timestamp": "2023010100", "views": 50},
			{"article": "Go", "timestamp": "2023010200", "views": 60}
		]
	}`
	tempFile := createTempFile(t, content)

	// Act
	response, err := ReadPageviewResponseFromJSON(tempFile)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(response.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(response.Items))
	}
	if response.Items[1].Views != 60 {
		t.Errorf("Expected 60 views, got %d", response.Items[1].Views)
	}
}

func TestReadPageviewResponseFromJSON_MalformedJSON(t *testing.T) {
	tempFile := createTempFile(t, `{"invalid_json`)

	response, err := ReadPageviewResponseFromJSON(tempFile)

	if err == nil {
		t.Errorf("expected an error, got nil")
	}
	if response != nil {
		t.Errorf("expected response to be nil, got %v", response)
	}
}

func TestReadPageviewResponseFromJSON_MissingFile(t *testing.T) {
	if _, err := ReadPageviewResponseFromJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
