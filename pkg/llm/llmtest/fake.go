// Package llmtest provides a scripted LLMProvider for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"autostream-assistant/pkg/llm"
)

// ErrScriptExhausted is returned when the fake receives more calls than it was scripted for.
var ErrScriptExhausted = errors.New("llmtest: no scripted reply left")

// Reply is one scripted answer; Err takes precedence over Content.
type Reply struct {
	Content string
	Err     error
}

// FakeProvider answers calls in order from a script and records every history it was sent.
type FakeProvider struct {
	mu      sync.Mutex
	replies []Reply
	calls   [][]llm.Message
}

var _ llm.LLMProvider = &FakeProvider{}

func New(replies ...Reply) *FakeProvider {
	return &FakeProvider{replies: replies}
}

// Texts is shorthand for a script of successful replies.
func Texts(contents ...string) *FakeProvider {
	replies := make([]Reply, len(contents))
	for i, c := range contents {
		replies[i] = Reply{Content: c}
	}
	return New(replies...)
}

// Push appends more scripted replies.
func (f *FakeProvider) Push(replies ...Reply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, replies...)
}

func (f *FakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	recorded := make([]llm.Message, len(history))
	copy(recorded, history)
	f.calls = append(f.calls, recorded)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(f.replies) == 0 {
		return "", ErrScriptExhausted
	}
	next := f.replies[0]
	f.replies = f.replies[1:]
	if next.Err != nil {
		return "", next.Err
	}
	return next.Content, nil
}

func (f *FakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{llm.UserMessage(prompt)}, options...)
}

// Calls returns the number of calls received so far.
func (f *FakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// History returns the messages sent on call i.
func (f *FakeProvider) History(i int) []llm.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.calls) {
		return nil
	}
	return f.calls[i]
}
