package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bodul/xwlevels/internal/catalog"
	"github.com/bodul/xwlevels/internal/layout"
)

const importPrompt = `This photo shows a list of crossword clues with their answers.

Transcribe it as JSON in the following format:
{
  "title": "<heading of the list, or empty>",
  "words": [
    {"clue": "Clue text", "answer": "ANSWER"},
    ...
  ]
}

Rules:
- Keep the clues in the order they appear on the page.
- Copy clues word for word; never invent a clue or an answer.
- Answers are a single word written in capital letters A to Z, without accents, spaces or hyphens.
- Skip any line that has no readable answer.
- Answer ONLY with the JSON, no comment or markdown.`

// importedLevel is the JSON shape Gemini is asked to return.
type importedLevel struct {
	Title string `json:"title"`
	Words []struct {
		Clue   string `json:"clue"`
		Answer string `json:"answer"`
	} `json:"words"`
}

// ImportLevel sends a photographed clue list to Gemini and returns the
// transcribed title and clues, ready for catalog.Add.
func (g *GeminiClient) ImportLevel(ctx context.Context, imageData []byte, mimeType string) (string, []catalog.Clue, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: importPrompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: imageData}},
			},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.1)),
			TopP:             genai.Ptr(float32(1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", nil, fmt.Errorf("empty gemini response")
	}
	return parseImport(text)
}

// parseImport decodes Gemini's answer. Answers are folded to A-Z and
// entries left empty are dropped.
func parseImport(text string) (string, []catalog.Clue, error) {
	var lvl importedLevel
	if err := json.Unmarshal([]byte(text), &lvl); err != nil {
		return "", nil, fmt.Errorf("parse level JSON: %w\nraw response: %s", err, text)
	}

	clues := make([]catalog.Clue, 0, len(lvl.Words))
	for _, w := range lvl.Words {
		answer := layout.Normalize(w.Answer)
		if answer == "" {
			continue
		}
		clues = append(clues, catalog.Clue{Text: strings.TrimSpace(w.Clue), Answer: answer})
	}
	if len(clues) == 0 {
		return "", nil, fmt.Errorf("%w: no usable words in response", catalog.ErrInvalidLevel)
	}
	return strings.TrimSpace(lvl.Title), clues, nil
}
