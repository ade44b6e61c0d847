package intent

import "github.com/hamgoftar/voice-gateway/internal/emotion"

// templates are the Persian response sets per intent. Selection picks
// uniformly within a set; emotion variants below are part of the set, so
// generated replies never leave it.
var templates = map[Intent][]string{
	Greeting: {
		"سلام! چطور می‌تونم کمکتون کنم؟",
		"درود! امیدوارم حالتون خوب باشه.",
		"سلام عزیز! چه خبر؟",
	},
	Question: {
		"سوال جالبی پرسیدید! بذارید فکر کنم...",
		"این سوال خیلی مهمه. چی دوست دارید بدونید؟",
		"سوالتون رو متوجه شدم. کمی توضیح بدم:",
	},
	RequestHelp: {
		"البته! خوشحال می‌شم کمکتون کنم.",
		"حتماً! بگید چطور می‌تونم مفید باشم.",
		"کمک کردن خوشحالم می‌کنه. چی نیاز دارید؟",
	},
	Thanks: {
		"خواهش می‌کنم! خوشحالم که تونستم کمک کنم.",
		"قابل نداره! هر وقت نیاز داشتید بگید.",
		"ممنون از لطفتون!",
	},
	Goodbye: {
		"خداحافظ! مراقب خودتون باشید.",
		"بای بای! امیدوارم روز خوبی داشته باشید.",
		"تا بعد! موفق باشید.",
	},
	WeatherInquiry: {
		"متاسفانه اطلاعات هواشناسی آنلاین ندارم، ولی امیدوارم هوا براتون مناسب باشه!",
		"هوا چطوره بیرون؟ امیدوارم آفتابی و دلپذیر باشه.",
		"برای اطلاعات دقیق هوا بهتره از منابع معتبر استفاده کنید.",
	},
	Complaint: {
		"متوجه نارضایتی شما هستم. چطور می‌تونم کمک کنم؟",
		"ببخشید که این اتفاق افتاده. بگید چکار کنم.",
		"نارضایتی شما برام مهمه. راه حلی پیدا می‌کنیم.",
	},
	Compliment: {
		"خیلی ممنون از لطفتون! خوشحالم.",
		"واقعاً ممنونم! انگیزه می‌ده.",
		"لطف دارید! خوشحال می‌شم بیشتر کمکتون کنم.",
	},
	GeneralConversation: {
		"جالبه! بیشتر توضیح بدید.",
		"متوجه شدم. چیز دیگه‌ای هم هست؟",
		"خیلی جالب بود! ادامه بدید.",
	},
}

// Emotion variants for greetings. A sad user gets the comforting form; an
// upbeat user gets the energized suffix appended.
const (
	greetingComfortVariant = "سلام عزیز! امیدوارم حالتون بهتر بشه."
	greetingUpbeatSuffix   = " انرژی مثبتتون عالیه!"
)

// fallbackReply is the terminal reply when even the generic template set is
// somehow unavailable.
const fallbackReply = "متوجه نشدم. می‌تونید دوباره بگید؟"

// TemplateSet enumerates every reply the template path can produce for an
// intent, including emotion variants. Exposed so callers and tests can check
// set membership.
func TemplateSet(i Intent) []string {
	base, ok := templates[i]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(base)*2+1)
	out = append(out, base...)
	if i == Greeting {
		out = append(out, greetingComfortVariant)
		for _, t := range base {
			out = append(out, t+greetingUpbeatSuffix)
		}
	}
	return out
}

// applyEmotionVariant adjusts a selected greeting template by the detected
// user emotion. The result always stays inside TemplateSet(Greeting).
func applyEmotionVariant(i Intent, reply string, emo emotion.Label) string {
	if i != Greeting {
		return reply
	}
	switch emo {
	case emotion.Sad, emotion.Angry:
		return greetingComfortVariant
	case emotion.Happy, emotion.Excited:
		return reply + greetingUpbeatSuffix
	default:
		return reply
	}
}
