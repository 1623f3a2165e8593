package lead

import (
	"strings"

	"autostream-assistant/internal/constant"
)

// Merge overlays non-empty extracted values on the collected ones; an empty value never
// overwrites. Neither input is modified.
func Merge(collected, extracted map[string]string) map[string]string {
	out := make(map[string]string, len(collected)+len(extracted))
	for k, v := range collected {
		out[k] = v
	}
	for _, key := range constant.RequiredFields {
		if v := extracted[key]; v != "" {
			out[key] = v
		}
	}
	return out
}

// Missing lists the unknown required fields in ask order: name, email, platform.
func Missing(info map[string]string) []string {
	missing := []string{}
	for _, key := range constant.RequiredFields {
		if info[key] == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// WantsOnboarding is true only after capture, when the text mentions an onboarding
// keyword or is exactly a short acknowledgement.
func WantsOnboarding(text string, leadCaptured bool) bool {
	if !leadCaptured {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, kw := range constant.OnboardingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	_, ack := constant.OnboardingAcknowledgements[lower]
	return ack
}
