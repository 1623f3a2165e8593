package constant

const IntentClassifierPrompt = "You are an intent classifier for the AutoStream sales assistant. " +
	"Classify the latest user message into one of: greeting, inquiry, high_intent, other. " +
	"High intent means the user wants to sign up, try, buy, or is ready to proceed. " +
	"Respond with only the intent word in lowercase."

const LeadExtractionPrompt = "Extract lead details from the latest user message. " +
	"Return a JSON object with keys name, email, platform. Use empty string if not provided. " +
	"Platform examples: YouTube, Instagram, TikTok, podcast, etc."

// RespondPromptTemplate takes the retrieved passages joined by newlines.
const RespondPromptTemplate = "You are AutoStream's assistant. Use ONLY the provided context. " +
	"If the answer is not in context, say you don't have that info. Be concise and helpful.\n\nContext:\n%s"

// OnboardingChecklistTemplate takes the plan label ("Pro", "Basic" or "your").
const OnboardingChecklistTemplate = "Here’s a quick %s onboarding checklist:\n" +
	"1) Connect your storage (Drive/Dropbox) and import a sample video.\n" +
	"2) Pick an editing template (cuts + captions) and set aspect ratio for your platform.\n" +
	"3) Enable AI captions and audio leveling; review the preview.\n" +
	"4) Export and publish to your creator platform (YouTube/Instagram/Twitch).\n" +
	"5) Turn on 24/7 support (Pro only) if you need live help.\n"
