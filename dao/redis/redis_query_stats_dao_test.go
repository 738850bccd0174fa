package redis

import (
	"context"
	"testing"

	"pageviews-server/db"
)

func TestRedisQueryStatsDAO_RecordQuery_Success(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisQueryStatsDAO(mockClient)

	// Act
	for i := 0; i < 3; i++ {
		if err := dao.RecordQuery("most-viewed-articles"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if err := dao.RecordQuery("article-view-count"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Assert
	stored, err := mockClient.Get("pageviews_queries_v1:most-viewed-articles")
	if err != nil {
		t.Fatalf("Expected counter to be stored, got error: %v", err)
	}
	if stored != "3" {
		t.Errorf("Expected counter 3, got %s", stored)
	}

	counts, err := dao.QueryCounts()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if counts["most-viewed-articles"] != 3 || counts["article-view-count"] != 1 {
		t.Errorf("Unexpected counts %v", counts)
	}
}

func TestRedisQueryStatsDAO_QueryCounts_NoResults(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisQueryStatsDAO(mockClient)

	// Act
	counts, err := dao.QueryCounts()

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("Expected no counts, got %d", len(counts))
	}
}

func TestRedisQueryStatsDAO_QueryCounts_SkipsNonNumeric(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisQueryStatsDAO(mockClient)
	_ = mockClient.Set("pageviews_queries_v1:broken", "abc")
	_ = dao.RecordQuery("article-view-count-top-day")

	counts, err := dao.QueryCounts()

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := counts["broken"]; ok {
		t.Error("Expected non-numeric counter to be skipped")
	}
	if counts["article-view-count-top-day"] != 1 {
		t.Errorf("Unexpected counts %v", counts)
	}
}

func TestRedisQueryStatsDAO_ResetQueryCounts(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisQueryStatsDAO(mockClient)
	_ = dao.RecordQuery("most-viewed-articles")
	_ = mockClient.Set("unrelated", "keep")

	if err := dao.ResetQueryCounts(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	counts, _ := dao.QueryCounts()
	if len(counts) != 0 {
		t.Errorf("Expected counters to be cleared, got %v", counts)
	}
	if v, err := mockClient.Get("unrelated"); err != nil || v != "keep" {
		t.Error("Expected unrelated key to survive reset")
	}
}
