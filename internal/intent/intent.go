// Package intent classifies utterance intent and generates the reply text.
// Classification is rule-based; response generation is template-first with a
// generative fallback.
package intent

import (
	"strings"
)

// Intent is the classified purpose of an utterance.
type Intent string

const (
	Greeting            Intent = "greeting"
	Question            Intent = "question"
	RequestHelp         Intent = "request_help"
	Thanks              Intent = "thanks"
	Goodbye             Intent = "goodbye"
	WeatherInquiry      Intent = "weather_inquiry"
	Complaint           Intent = "complaint"
	Compliment          Intent = "compliment"
	GeneralConversation Intent = "general_conversation"
)

// Entity is a span of interest extracted from the utterance.
type Entity struct {
	Type       string
	Value      string
	Confidence float64
}

// Result is the classification outcome for one utterance. It is produced per
// utterance and consumed once by response generation.
type Result struct {
	Intent     Intent
	Confidence float64
	Entities   []Entity
}

// keywordFamily pairs an intent with its trigger keywords and the fixed
// confidence assigned on a match.
type keywordFamily struct {
	intent     Intent
	confidence float64
	keywords   []string
}

// families are matched in order; the first hit wins.
var families = []keywordFamily{
	{Greeting, 0.9, []string{"سلام", "درود", "صبح بخیر", "عصر بخیر", "hello", "hi"}},
	{Thanks, 0.9, []string{"ممنون", "متشکر", "سپاس", "thanks", "thank you"}},
	{Goodbye, 0.9, []string{"خداحافظ", "بای", "فعلاً", "goodbye", "bye"}},
	{RequestHelp, 0.8, []string{"کمک", "راهنمایی", "لطف", "help"}},
	{WeatherInquiry, 0.8, []string{"هوا", "آب و هوا", "بارون", "آفتاب", "weather"}},
}

// questionMarkers flag interrogative utterances after the keyword families.
var questionMarkers = []string{"?", "؟", "چرا", "چگونه", "why"}

// UnderstandIntent matches text against the ordered keyword families and
// assigns the family's fixed confidence. Unmatched text is classified as
// general conversation with low confidence.
func (e *Engine) UnderstandIntent(text string) Result {
	lower := strings.ToLower(text)

	for _, fam := range families {
		for _, kw := range fam.keywords {
			if strings.Contains(lower, kw) {
				return Result{
					Intent:     fam.intent,
					Confidence: fam.confidence,
					Entities: []Entity{
						{Type: "keyword", Value: kw, Confidence: fam.confidence},
					},
				}
			}
		}
	}

	for _, marker := range questionMarkers {
		if strings.Contains(lower, marker) {
			return Result{Intent: Question, Confidence: 0.7}
		}
	}

	return Result{Intent: GeneralConversation, Confidence: 0.5}
}
