package constant

const (
	IntentGreeting   = "greeting"
	IntentInquiry    = "inquiry"
	IntentHighIntent = "high_intent"
	IntentOther      = "other"

	PlanBasic = "basic"
	PlanPro   = "pro"

	LeadFieldName     = "name"
	LeadFieldEmail    = "email"
	LeadFieldPlatform = "platform"

	DefaultKnowledgeBasePath = "data/knowledge_base.json"
	DefaultRetrievalTopK     = 3
)

// RequiredFields is also the order in which missing fields are asked for.
var RequiredFields = []string{LeadFieldName, LeadFieldEmail, LeadFieldPlatform}

var ValidIntents = []string{IntentGreeting, IntentInquiry, IntentHighIntent, IntentOther}

var ConfusionKeywords = []string{"confused", "compare", "difference", "which plan", "not sure", "decide", "vs"}

var OnboardingKeywords = []string{"onboarding", "checklist", "next steps", "setup", "get started"}

var OnboardingAcknowledgements = map[string]struct{}{
	"yes":      {},
	"yes sure": {},
	"sure":     {},
	"yeah":     {},
	"ok":       {},
	"okay":     {},
	"yup":      {},
}

var PlanSummaries = map[string]string{
	PlanBasic: "Basic plan: $29/month, 10 videos/month, 720p resolution.",
	PlanPro:   "Pro plan: $79/month, unlimited videos, 4K, AI captions, 24/7 support.",
}

const GenericPlanPitch = "We have two plans: Basic ($29/mo, 10 videos, 720p) and Pro ($79/mo, unlimited, 4K, AI captions, 24/7 support)."
