package response

import (
	"fmt"
	"strings"

	"autostream-assistant/internal/constant"
)

// PlanPitch returns the one-line summary of a plan, or the two-plan overview when none is chosen.
func PlanPitch(plan string) string {
	if summary, ok := constant.PlanSummaries[plan]; ok {
		return summary
	}
	return constant.GenericPlanPitch
}

// OnboardingSteps renders the fixed 5-step checklist for the plan.
func OnboardingSteps(plan string) string {
	label := "your"
	switch plan {
	case constant.PlanPro:
		label = "Pro"
	case constant.PlanBasic:
		label = "Basic"
	}
	return fmt.Sprintf(constant.OnboardingChecklistTemplate, label)
}

var askPhrases = map[string]string{
	constant.LeadFieldName:     "your name",
	constant.LeadFieldEmail:    "a work email",
	constant.LeadFieldPlatform: "your creator platform (e.g., YouTube, Instagram)",
}

// AskText asks for the missing fields, always in name, email, platform order.
func AskText(missing []string) string {
	parts := make([]string, 0, len(missing))
	for _, field := range constant.RequiredFields {
		for _, m := range missing {
			if m == field {
				parts = append(parts, askPhrases[field])
				break
			}
		}
	}
	return "Could you share " + strings.Join(parts, " and ") + " to set you up?"
}

// MissingFieldsReply pitches the plan, echoes the retrieved context if any, and asks for the rest.
func MissingFieldsReply(plan string, retrieved []string, missing []string) string {
	lines := []string{"Great! I can help you start with AutoStream. " + PlanPitch(plan)}
	if contextText := strings.Join(retrieved, "\n"); contextText != "" {
		lines = append(lines, "Context:\n"+contextText)
	}
	lines = append(lines, AskText(missing))
	return strings.Join(lines, "\n")
}

func CaptureReply(plan string) string {
	label := plan
	if label == "" {
		label = "selected"
	}
	return fmt.Sprintf(
		"Awesome, you're set for the %s plan! I've captured your details and will send next steps to your email. %s Want a quick onboarding checklist?",
		label, PlanPitch(plan),
	)
}

const FollowUpReply = "All set! Anything else you'd like to know about AutoStream?"

// CaptureConfirmation is the line emitted by the lead capture side effect.
func CaptureConfirmation(name, email, platform string) string {
	return fmt.Sprintf("Lead captured successfully: %s, %s, %s", name, email, platform)
}
