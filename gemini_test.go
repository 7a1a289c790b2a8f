package main

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/bodul/xwlevels/internal/catalog"
)

func TestParseImport(t *testing.T) {
	title, clues, err := parseImport(`{
		"title": "  Fruits ",
		"words": [
			{"clue": "Red fruit", "answer": "apple"},
			{"clue": "Unreadable", "answer": ""},
			{"clue": "Yellow fruit", "answer": "BA-NANA"}
		]
	}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if title != "Fruits" {
		t.Fatalf("unexpected title %q", title)
	}
	if len(clues) != 2 {
		t.Fatalf("expected 2 clues, got %d", len(clues))
	}
	if clues[0].Answer != "APPLE" || clues[1].Answer != "BANANA" || clues[1].Text != "Yellow fruit" {
		t.Fatalf("unexpected clues %+v", clues)
	}
}

func TestParseImportRejects(t *testing.T) {
	if _, _, err := parseImport("not json"); err == nil {
		t.Fatal("expected a parse error")
	}
	_, _, err := parseImport(`{"title":"Empty","words":[{"clue":"x","answer":"123"}]}`)
	if !errors.Is(err, catalog.ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestGeminiImportLevel(t *testing.T) {
	projectID := os.Getenv("GCP_PROJECT_ID")
	if projectID == "" {
		t.Skip("GCP_PROJECT_ID not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := NewGeminiClient(ctx, projectID, os.Getenv("GCP_REGION"), "")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	imageData, err := os.ReadFile("test_data/clues.png")
	if err != nil {
		t.Skipf("no sample image: %v", err)
	}

	title, clues, err := client.ImportLevel(ctx, imageData, "image/png")
	if err != nil {
		t.Fatalf("import level: %v", err)
	}
	t.Logf("Imported %q with %d words", title, len(clues))
	for _, c := range clues {
		t.Logf("  %s: %s", c.Answer, c.Text)
	}
}
