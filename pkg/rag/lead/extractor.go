// Package lead extracts and accumulates prospect contact details during the high-intent flow.
package lead

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"autostream-assistant/internal/constant"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/pkg/llm"
)

type Status string

const (
	StatusExtracted Status = "extracted"
	// StatusFallback means extraction failed and every field is empty.
	StatusFallback Status = "fallback"
)

var (
	ErrNoJSON       = errors.New("no JSON object in model output")
	ErrInvalidValue = errors.New("lead field is not a string")
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Extraction is the best-effort result of one extraction attempt.
// Fields always carries name, email and platform.
type Extraction struct {
	Fields map[string]string
	Status Status
	Err    error
}

func (e Extraction) OK() bool {
	return e.Status == StatusExtracted
}

type Extractor struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewExtractor(llmProvider llm.LLMProvider, logger logger.ILogger) *Extractor {
	return &Extractor{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Extract never fails the caller: any error yields StatusFallback with empty fields.
func (e *Extractor) Extract(ctx context.Context, text string) Extraction {
	raw, err := e.llmProvider.Chat(ctx, []llm.Message{
		llm.SystemMessage(constant.LeadExtractionPrompt),
		llm.UserMessage(text),
	})
	if err != nil {
		return e.fallback(fmt.Errorf("lead extraction call failed: %w", err))
	}

	fields, err := ParseFields(raw)
	if err != nil {
		return e.fallback(err)
	}

	return Extraction{Fields: fields, Status: StatusExtracted}
}

func (e *Extractor) fallback(err error) Extraction {
	e.logger.Warn("LeadExtractor", "Lead extraction degraded to empty fields", map[string]interface{}{
		"error": err.Error(),
	})
	return Extraction{Fields: EmptyFields(), Status: StatusFallback, Err: err}
}

// ParseFields decodes the first brace-delimited span of raw and keeps only the
// required lead keys, trimmed. JSON null counts as empty.
func ParseFields(raw string) (map[string]string, error) {
	match := jsonObjectPattern.FindString(raw)
	if match == "" {
		return nil, ErrNoJSON
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		return nil, fmt.Errorf("decode lead JSON: %w", err)
	}

	fields := EmptyFields()
	for _, key := range constant.RequiredFields {
		v, ok := parsed[key]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidValue, key)
		}
		fields[key] = strings.TrimSpace(s)
	}
	return fields, nil
}

func EmptyFields() map[string]string {
	fields := make(map[string]string, len(constant.RequiredFields))
	for _, key := range constant.RequiredFields {
		fields[key] = ""
	}
	return fields
}
