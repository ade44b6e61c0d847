package emotion

import "testing"

func TestClassifyPersianKeywords(t *testing.T) {
	cases := []struct {
		text string
		want Label
	}{
		{"ممنون از شما", Happy},
		{"خیلی ناراحت هستم", Sad},
		{"از دستت عصبانی شدم", Angry},
		{"وای چه خبر خوبی", Excited},
		{"امروز هوا چطور است؟", Neutral},
	}
	for _, c := range cases {
		if got := Classify(c.text); got != c.want {
			t.Fatalf("Classify(%q) = %s, want %s", c.text, got, c.want)
		}
	}
}

func TestClassifyPriorityExcitedBeatsHappy(t *testing.T) {
	// Contains both an excited keyword and a happy keyword.
	if got := Classify("وای چقدر خوشحال شدم"); got != Excited {
		t.Fatalf("expected excited to win over happy, got %s", got)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	text := "امروز خیلی خوب بود"
	first := Classify(text)
	for i := 0; i < 50; i++ {
		_ = i
		if got := Classify(text); got != first {
			t.Fatalf("classification not stable: %s vs %s", first, got)
		}
	}
}

func TestClassifyEnglishAndEmpty(t *testing.T) {
	if got := Classify("this is amazing"); got != Excited {
		t.Fatalf("expected excited, got %s", got)
	}
	if got := Classify(""); got != Neutral {
		t.Fatalf("expected neutral for empty text, got %s", got)
	}
}
