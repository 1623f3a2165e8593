package llm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"autostream-assistant/pkg/llm"
	"autostream-assistant/pkg/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_RecoversWithinBudget(t *testing.T) {
	fake := llmtest.New(
		llmtest.Reply{Err: errors.New("503 unavailable")},
		llmtest.Reply{Content: "hello"},
	)
	p := llm.WithRetry(fake, 1, time.Second)

	out, err := p.Chat(context.Background(), []llm.Message{llm.UserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, 2, fake.Calls())
}

func TestWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	boom := errors.New("boom")
	fake := llmtest.New(
		llmtest.Reply{Err: boom},
		llmtest.Reply{Err: boom},
		llmtest.Reply{Content: "too late"},
	)
	p := llm.WithRetry(fake, 1, time.Second)

	_, err := p.Generate(context.Background(), "hi")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, fake.Calls())
}

func TestWithRetry_ZeroRetriesCallsOnce(t *testing.T) {
	fake := llmtest.New(llmtest.Reply{Err: errors.New("boom")}, llmtest.Reply{Content: "unused"})
	p := llm.WithRetry(fake, 0, 0)

	_, err := p.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Equal(t, 1, fake.Calls())
}

func TestWithRetry_StopsOnCancelledContext(t *testing.T) {
	fake := llmtest.Texts("never")
	p := llm.WithRetry(fake, 3, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, "hi")
	require.Error(t, err)
	assert.LessOrEqual(t, fake.Calls(), 1)
}

func TestApplyOptions(t *testing.T) {
	opts := llm.ApplyOptions(llm.Options{Model: "base"}, llm.WithModel("override"), llm.WithTemperature(0.1), llm.WithMaxTokens(64))

	assert.Equal(t, "override", opts.Model)
	require.NotNil(t, opts.Temperature)
	assert.InDelta(t, 0.1, *opts.Temperature, 1e-9)
	assert.Equal(t, 64, opts.MaxTokens)
}
