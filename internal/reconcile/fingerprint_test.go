package reconcile

import (
	"testing"

	"github.com/desertthunder/lvx/internal/models"
)

func TestFingerprint(t *testing.T) {
	tc := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "plain ascii", raw: "Paranoia", want: "paranoia"},
		{name: "trailing challenge marker", raw: "Song(鬼)", want: "song"},
		{name: "trailing expert marker", raw: "Song(激)", want: "song"},
		{name: "other trailing markers", raw: "Song(習)", want: "song"},
		{name: "full-width marker parens", raw: "Song（鬼）", want: "song"},
		{name: "mid-string marker kept", raw: "Song(鬼)Remix", want: "song鬼remix"},
		{name: "only one marker stripped", raw: "Song(鬼)(激)", want: "song鬼"},
		{name: "unknown marker kept", raw: "Song(神)", want: "song神"},
		{name: "punctuation and spaces", raw: `MAX 300 ~Super-Max-Me Mix~`, want: "max300supermaxmemix"},
		{name: "quotes and symbols", raw: `"Ha!" & ♥ Song`, want: "hasong"},
		{name: "full-width alnum", raw: "ＡＢＣ１２３", want: "abc123"},
		{name: "half-width katakana", raw: "ｶﾀｶﾅ", want: "カタカナ"},
		{name: "kanji and hiragana", raw: "天空の華", want: "天空の華"},
		{name: "latin accents dropped", raw: "Café", want: "caf"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Fingerprint(tt.raw)
			if got != tt.want {
				t.Errorf("Fingerprint(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFingerprintIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Song(鬼)",
		"Song(鬼)(鬼)",
		"ＡＢＣ１２３(激)",
		"ｶﾞﾝﾀﾞﾑ",
		"か゛",
		"ぱ",
		"PARANOiA ～HADES～",
		"Song(鬼)Remix",
		"㍿ ㌔ ①",
		"!!!",
	}

	for _, s := range inputs {
		t.Run(s, func(t *testing.T) {
			once := Fingerprint(s)
			twice := Fingerprint(once)
			if once != twice {
				t.Errorf("Fingerprint(Fingerprint(%q)) = %q, want %q", s, twice, once)
			}
		})
	}
}

func TestFingerprintEquivalence(t *testing.T) {
	t.Run("marker stripping is end-anchored", func(t *testing.T) {
		if Fingerprint("Song(鬼)") != Fingerprint("Song") {
			t.Errorf("trailing marker should be stripped")
		}
		if Fingerprint("Song(鬼)Remix") == Fingerprint("SongRemix") {
			t.Errorf("mid-string marker should be kept")
		}
	})

	t.Run("case and width insensitive", func(t *testing.T) {
		if Fingerprint("ＡＢＣ１２３") != Fingerprint("ABC123") {
			t.Errorf("full-width and half-width inputs differ")
		}
		if Fingerprint("abc123") != Fingerprint("ABC123") {
			t.Errorf("case should not matter")
		}
	})
}

func TestRules(t *testing.T) {
	t.Run("custom markers", func(t *testing.T) {
		r := NewRules("[C]", "[E]", "X", " ", "")
		if got := r.Fingerprint("Song(X)"); got != "song" {
			t.Errorf("Fingerprint() = %q, want %q", got, "song")
		}
		if got := r.Fingerprint("Song(鬼)"); got != "song鬼" {
			t.Errorf("Fingerprint() = %q, want %q", got, "song鬼")
		}
		if got := r.ClassifyVariant("Song[E]"); got != models.ModeExpert {
			t.Errorf("ClassifyVariant() = %v, want %v", got, models.ModeExpert)
		}
	})

	t.Run("no markers", func(t *testing.T) {
		r := NewRules("", "")
		if got := r.Fingerprint("Song(鬼)"); got != "song鬼" {
			t.Errorf("Fingerprint() = %q, want %q", got, "song鬼")
		}
		if got := r.ClassifyVariant("Song(鬼)"); got != models.ModeBoth {
			t.Errorf("ClassifyVariant() = %v, want %v", got, models.ModeBoth)
		}
	})
}
