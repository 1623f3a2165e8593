package response

import (
	"context"
	"errors"
	"strings"
	"testing"

	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/pkg/llm"
	"autostream-assistant/pkg/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanPitch(t *testing.T) {
	assert.Equal(t, "Pro plan: $79/month, unlimited videos, 4K, AI captions, 24/7 support.", PlanPitch("pro"))
	assert.Equal(t, "Basic plan: $29/month, 10 videos/month, 720p resolution.", PlanPitch("basic"))
	assert.Equal(t,
		"We have two plans: Basic ($29/mo, 10 videos, 720p) and Pro ($79/mo, unlimited, 4K, AI captions, 24/7 support).",
		PlanPitch(""))
}

func TestOnboardingSteps(t *testing.T) {
	pro := OnboardingSteps("pro")
	assert.True(t, strings.HasPrefix(pro, "Here’s a quick Pro onboarding checklist:\n1) Connect your storage"))
	assert.True(t, strings.HasSuffix(pro, "5) Turn on 24/7 support (Pro only) if you need live help.\n"))
	assert.Equal(t, 6, strings.Count(pro, "\n"))

	assert.Contains(t, OnboardingSteps("basic"), "quick Basic onboarding")
	assert.Contains(t, OnboardingSteps(""), "quick your onboarding")
}

func TestAskText(t *testing.T) {
	tests := []struct {
		missing []string
		want    string
	}{
		{
			missing: []string{"name", "email", "platform"},
			want:    "Could you share your name and a work email and your creator platform (e.g., YouTube, Instagram) to set you up?",
		},
		{missing: []string{"platform", "name"}, want: "Could you share your name and your creator platform (e.g., YouTube, Instagram) to set you up?"},
		{missing: []string{"email"}, want: "Could you share a work email to set you up?"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.missing, ","), func(t *testing.T) {
			assert.Equal(t, tt.want, AskText(tt.missing))
		})
	}
}

func TestMissingFieldsReply(t *testing.T) {
	withContext := MissingFieldsReply("pro", []string{"Plan: Pro", "Policies: none"}, []string{"email"})
	assert.Equal(t,
		"Great! I can help you start with AutoStream. Pro plan: $79/month, unlimited videos, 4K, AI captions, 24/7 support.\n"+
			"Context:\nPlan: Pro\nPolicies: none\n"+
			"Could you share a work email to set you up?",
		withContext)

	noContext := MissingFieldsReply("", nil, []string{"name"})
	assert.Equal(t,
		"Great! I can help you start with AutoStream. "+PlanPitch("")+"\nCould you share your name to set you up?",
		noContext)
}

func TestCaptureReply(t *testing.T) {
	assert.Equal(t,
		"Awesome, you're set for the pro plan! I've captured your details and will send next steps to your email. "+
			"Pro plan: $79/month, unlimited videos, 4K, AI captions, 24/7 support. Want a quick onboarding checklist?",
		CaptureReply("pro"))
	assert.Contains(t, CaptureReply(""), "set for the selected plan!")
}

func TestCaptureConfirmation(t *testing.T) {
	assert.Equal(t, "Lead captured successfully: John, john@x.com, YouTube", CaptureConfirmation("John", "john@x.com", "YouTube"))
}

func TestGenerator_Generate(t *testing.T) {
	fake := llmtest.Texts("Pro costs $79/month.")
	g := NewGenerator(fake, logger.NewNop())
	history := []llm.Message{llm.UserMessage("how much is pro?")}

	reply, err := g.Generate(context.Background(), []string{"Plan: Pro | Price: $79/month"}, history)

	require.NoError(t, err)
	assert.Equal(t, "Pro costs $79/month.", reply)
	sent := fake.History(0)
	require.Len(t, sent, 2)
	assert.Equal(t, llm.RoleSystem, sent[0].Role)
	assert.True(t, strings.HasSuffix(sent[0].Content, "Context:\nPlan: Pro | Price: $79/month"))
	assert.Equal(t, history[0], sent[1])
}

func TestGenerator_Error(t *testing.T) {
	boom := errors.New("timeout")
	g := NewGenerator(llmtest.New(llmtest.Reply{Err: boom}), logger.NewNop())

	_, err := g.Generate(context.Background(), nil, nil)

	assert.ErrorIs(t, err, boom)
}
