package chat

const (
	// DefaultModel is used when the operator has not selected a model.
	DefaultModel = "gemini-2.0-flash"

	// MaxHistoryTurns is the number of user/assistant pairs kept when a
	// rate-limited session is rebuilt.
	MaxHistoryTurns = 6

	// RestartNotice is the synthetic assistant message shown after a
	// rate-limited session has been rebuilt from the bounded window.
	RestartNotice = "⚠️ The API request was rate limited (429). The chat session has been restarted with only the last 6 turns of conversation."

	// apologyPrefix opens the visible reply substituted for a failed send.
	apologyPrefix = "Sorry, something went wrong: "
)

// FallbackSystemPrompt is compiled in for when prompts/stylist.txt is not
// present next to the binary.
const FallbackSystemPrompt = `You are a friendly AI stylist who recommends outfits that fit the customer's situation. The customer is busy getting ready to go out, so your answers must always be concise and practical.

Operating rules:
1. When the customer shares today's temperature, the temperature range, their planned activity, gender, age, and similar details, collect and organize that information explicitly.
2. If the information is not sufficient, ask one concise follow-up question covering what is missing.
3. Once you have everything you need, recommend a practical outfit for the customer's situation (temperature/activity/gender/age) in a single concise paragraph.
4. Always close with: "I can recommend products that suit you today."`
