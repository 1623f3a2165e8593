package executor

import (
	"context"
	"fmt"
	"io"
	"os"

	"autostream-assistant/pkg/rag/response"
	"autostream-assistant/pkg/store"
)

// PrintCapturer is the mock lead-capture API: it only prints the confirmation line.
// New falls back to it on stdout when Deps.Capturer is nil.
type PrintCapturer struct {
	Out io.Writer
}

func NewPrintCapturer(out io.Writer) *PrintCapturer {
	if out == nil {
		out = os.Stdout
	}
	return &PrintCapturer{Out: out}
}

func (p *PrintCapturer) Capture(ctx context.Context, lead store.Lead) string {
	msg := response.CaptureConfirmation(lead.Name, lead.Email, lead.Platform)
	fmt.Fprintln(p.Out, msg)
	return msg
}
