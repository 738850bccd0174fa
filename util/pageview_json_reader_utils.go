package util

import (
	"fmt"
	"os"

	"pageviews-server/models"
)

// ReadPageviewResponseFromJSON loads a PageviewResponse from JSON on disk.
func ReadPageviewResponseFromJSON(filePath string) (*models.PageviewResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	resp, err := models.ParsePageviewResponse(data)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
