// Package gemini implements the text analyzer on top of the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/analysis"
	"github.com/spigell/ats-scorer/internal/utils"
)

// Provider is the configuration name of this analyzer.
const Provider = "gemini"

const defaultMaxLogLength = 200

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed prompt.md
var systemPrompt string

// Analyzer asks Gemini for tokens, entities and noun chunks of a text.
type Analyzer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewAnalyzer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Analyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyzer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, text string) (*analysis.Document, error) {
	if strings.TrimSpace(text) == "" {
		return &analysis.Document{}, nil
	}

	a.logger.Debug("gemini analyze request",
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.String("text_preview", utils.TruncateForLog(text, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, systemPrompt, text)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini analyze response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	return parseResponse(raw)
}

func parseResponse(raw string) (*analysis.Document, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	var doc analysis.Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini analysis: %w", err)
	}

	normalize(&doc)
	return &doc, nil
}

// normalize makes model output look like the built-in analyzer's: upper-case
// tags and labels, lower-case lemmas, lemma falling back to the text.
func normalize(doc *analysis.Document) {
	for i := range doc.Tokens {
		tok := &doc.Tokens[i]
		tok.POS = analysis.POS(strings.ToUpper(strings.TrimSpace(string(tok.POS))))
		if tok.POS == "" {
			tok.POS = analysis.Other
		}
		tok.Lemma = lowerOr(tok.Lemma, tok.Text)
	}
	for i := range doc.Entities {
		doc.Entities[i].Label = strings.ToUpper(strings.TrimSpace(doc.Entities[i].Label))
	}
	for i := range doc.Chunks {
		doc.Chunks[i].Lemma = lowerOr(doc.Chunks[i].Lemma, doc.Chunks[i].Text)
	}
}

func lowerOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		value = strings.TrimSpace(fallback)
	}
	return strings.ToLower(value)
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
