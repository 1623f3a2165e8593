package main

import (
	"bytes"
	"testing"
	"time"

	"autostream-assistant/pkg/events"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrintLead(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printLead(&buf, events.BaseEvent{
		Type:       events.LeadCaptured,
		OccurredAt: time.Date(2026, 5, 2, 14, 3, 0, 0, time.UTC),
		Data: map[string]interface{}{
			"name": "Jane", "email": "jane@x.io", "platform": "YouTube", "plan": "pro",
		},
	})

	assert.Equal(t, "2026-05-02 14:03:00 [pro] Jane <jane@x.io> on YouTube\n", buf.String())
}
