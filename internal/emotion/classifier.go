// Package emotion derives a coarse sentiment label from utterance text.
// The label styles the synthesized voice response.
package emotion

import "strings"

// Label is an emotion tag accepted by the TTS voice selection.
type Label string

const (
	Neutral Label = "neutral"
	Happy   Label = "happy"
	Sad     Label = "sad"
	Angry   Label = "angry"
	Excited Label = "excited"
)

// keywordBuckets maps each label to its Persian and English trigger words.
var keywordBuckets = map[Label][]string{
	Excited: {
		"هیجان", "فوق‌العاده", "باورنکردنی", "وای", "عجب", "محشر",
		"wow", "amazing", "awesome", "incredible", "can't wait", "unbelievable",
	},
	Happy: {
		"خوب", "عالی", "خوشحال", "ممنون", "سپاس", "شاد", "خنده",
		"great", "happy", "glad", "thanks", "love", "haha",
	},
	Sad: {
		"بد", "ناراحت", "غمگین", "متاسف", "خسته", "گریه", "تنها",
		"sad", "unhappy", "cry", "tired", "sorry", "depressed",
	},
	Angry: {
		"عصبانی", "خشمگین", "متنفر", "مزخرف", "بس کن", "کلافه",
		"angry", "furious", "mad", "hate", "annoyed",
	},
}

// priority fixes the category order: first matching bucket wins.
var priority = []Label{Excited, Happy, Sad, Angry}

// Classify returns the emotion tag for text. It is a pure function: no
// randomness, no external calls, and it never fails — unclassifiable text
// yields Neutral.
func Classify(text string) Label {
	lower := strings.ToLower(text)
	for _, label := range priority {
		for _, kw := range keywordBuckets[label] {
			if strings.Contains(lower, kw) {
				return label
			}
		}
	}
	return Neutral
}
