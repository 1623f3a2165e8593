package prompt

import (
	"fmt"
	"strings"

	"autostream-assistant/internal/constant"
	"autostream-assistant/pkg/llm"
)

// ContextualBuilder assembles the grounded history sent to the chat model
type ContextualBuilder struct {
	retrieved []string
	history   []llm.Message
}

func NewContextualBuilder(retrieved []string, history []llm.Message) *ContextualBuilder {
	return &ContextualBuilder{
		retrieved: retrieved,
		history:   history,
	}
}

// SystemPrompt restricts the assistant to the retrieved passages.
func (b *ContextualBuilder) SystemPrompt() string {
	return fmt.Sprintf(constant.RespondPromptTemplate, strings.Join(b.retrieved, "\n"))
}

// Build returns the system instruction followed by the full conversation history.
func (b *ContextualBuilder) Build() []llm.Message {
	messages := make([]llm.Message, 0, len(b.history)+1)
	messages = append(messages, llm.SystemMessage(b.SystemPrompt()))
	messages = append(messages, b.history...)
	return messages
}
