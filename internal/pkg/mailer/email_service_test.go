package mailer

import (
	"errors"
	"strings"
	"testing"

	"autostream-assistant/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingSender struct {
	sent []*gomail.Message
	err  error
}

func (r *recordingSender) DialAndSend(m ...*gomail.Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, m...)
	return nil
}

func TestBuildOnboardingMessage(t *testing.T) {
	m := BuildOnboardingMessage("hello@autostream.io", "AutoStream", "john@x.com", "John", "pro")

	assert.Equal(t, []string{"john@x.com"}, m.GetHeader("To"))
	assert.Contains(t, m.GetHeader("Subject")[0], "onboarding checklist")
}

func TestOnboardingBody(t *testing.T) {
	body := onboardingBody("John", "pro")

	assert.Contains(t, body, "Hi John")
	assert.Contains(t, body, "Pro onboarding checklist")
	assert.Contains(t, body, "Pro plan: $79/month")
	assert.Equal(t, 6, strings.Count(body, "<li>"))
}

func TestBuildOnboardingMessage_EscapesName(t *testing.T) {
	body := onboardingBody("<b>Eve</b>", "")
	assert.NotContains(t, body, "<b>Eve</b>")
	assert.Contains(t, body, "&lt;b&gt;Eve&lt;/b&gt;")
}

func TestSendOnboarding(t *testing.T) {
	sender := &recordingSender{}
	svc := NewEmailServiceWithSender(sender, "hello@autostream.io", "AutoStream", logger.NewNop())

	require.NoError(t, svc.SendOnboarding("john@x.com", "John", "basic"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"john@x.com"}, sender.sent[0].GetHeader("To"))
}

func TestSendOnboarding_Error(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := NewEmailServiceWithSender(sender, "hello@autostream.io", "AutoStream", logger.NewNop())

	err := svc.SendOnboarding("john@x.com", "John", "basic")
	assert.EqualError(t, err, "smtp down")
}
