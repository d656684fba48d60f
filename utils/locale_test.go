package utils

import "testing"

func TestResolveLocaleQueryWins(t *testing.T) {
	if got := ResolveLocale("ar", "tr-TR,tr;q=0.9"); got != "ar" {
		t.Fatalf("expected explicit query locale ar, got %s", got)
	}
}

func TestResolveLocaleUnknownQueryFallsThrough(t *testing.T) {
	if got := ResolveLocale("de", "tr-TR,tr;q=0.9"); got != "tr" {
		t.Fatalf("expected tr from Accept-Language, got %s", got)
	}
}

func TestResolveLocaleAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"ar-SA,ar;q=0.9,en;q=0.8", "ar"},
		{"tr-TR,tr;q=0.9", "tr"},
		{"en-US,en;q=0.9", "en"},
		{"fr-FR,fr;q=0.9", "en"},
		{"", "en"},
		{";;;garbage", "en"},
	}
	for _, tt := range tests {
		if got := ResolveLocale("", tt.header); got != tt.want {
			t.Fatalf("ResolveLocale(%q) = %s, want %s", tt.header, got, tt.want)
		}
	}
}
