package intent

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"autostream-assistant/internal/constant"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/pkg/llm"
	"autostream-assistant/pkg/store"
)

// Source tells which rule produced the intent
type Source string

const (
	SourceKeyword Source = "keyword" // confusion keyword override
	SourceSticky  Source = "sticky"  // pending high-intent flow kept without a model call
	SourceModel   Source = "model"
)

type Result struct {
	Intent     string `json:"intent"`
	PlanChoice string `json:"plan_choice"`
	Source     Source `json:"source"`
}

// DetectPlanChoice returns "basic" or "pro" when the text names a plan, "" otherwise.
// "basic" wins when both appear.
func DetectPlanChoice(text string) string {
	lower := strings.ToLower(text)
	if strings.Contains(lower, constant.PlanBasic) {
		return constant.PlanBasic
	}
	if strings.Contains(lower, constant.PlanPro) {
		return constant.PlanPro
	}
	return ""
}

// HasConfusionKeyword reports whether the text signals the user is comparing or undecided.
func HasConfusionKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range constant.ConfusionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Normalize coerces a raw model answer to a known intent label.
func Normalize(raw string) string {
	intent := strings.ToLower(strings.TrimSpace(raw))
	if slices.Contains(constant.ValidIntents, intent) {
		return intent
	}
	return constant.IntentOther
}

// Classifier maps the latest user utterance to an intent label
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewClassifier(llmProvider llm.LLMProvider, logger logger.ILogger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Classify applies, first match wins: confusion keywords, the sticky high-intent rule,
// then one model call. The plan choice is refreshed from the utterance in every case.
func (c *Classifier) Classify(ctx context.Context, session *store.Session) (Result, error) {
	lastUser := strings.ToLower(session.LastUserText())

	planChoice := DetectPlanChoice(lastUser)
	if planChoice == "" {
		planChoice = session.PlanChoice
	}

	if HasConfusionKeyword(lastUser) {
		return Result{Intent: constant.IntentInquiry, PlanChoice: planChoice, Source: SourceKeyword}, nil
	}

	if session.Intent == constant.IntentHighIntent && !session.LeadCaptured {
		return Result{Intent: constant.IntentHighIntent, PlanChoice: planChoice, Source: SourceSticky}, nil
	}

	raw, err := c.llmProvider.Chat(ctx, []llm.Message{
		llm.SystemMessage(constant.IntentClassifierPrompt),
		llm.UserMessage(lastUser),
	})
	if err != nil {
		return Result{}, fmt.Errorf("intent classification failed: %w", err)
	}

	intent := Normalize(raw)
	if intent != strings.ToLower(strings.TrimSpace(raw)) {
		c.logger.Warn("IntentClassifier", "Unexpected model label coerced to other", map[string]interface{}{
			"raw": raw,
		})
	}

	return Result{Intent: intent, PlanChoice: planChoice, Source: SourceModel}, nil
}
