package locale

import (
	"testing"

	"golang.org/x/text/language"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"de_DE.UTF-8":  "de-DE",
		"fr_CA@euro":   "fr-CA",
		"en":           "en",
		"C":            "",
		"POSIX":        "",
		"  es_MX  ":    "es-MX",
		"":             "",
		"pt-BR.ISO-88": "pt-BR",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLocalizer(t *testing.T) {
	tests := []struct {
		langs     []string
		tag       language.Tag
		backTitle string
		backLabel string
		close     string
	}{
		{nil, language.English, "Back", "Home, back", "Close"},
		{[]string{"de_DE.UTF-8"}, language.German, "Zurück", "Home, zurück", "Schließen"},
		{[]string{"fr-CA"}, language.French, "Retour", "Home, retour", "Fermer"},
		{[]string{"es"}, language.Spanish, "Atrás", "Home, atrás", "Cerrar"},
		{[]string{"ja", "de"}, language.German, "Zurück", "Home, zurück", "Schließen"},
		{[]string{"C"}, language.English, "Back", "Home, back", "Close"},
	}

	for _, tt := range tests {
		l := New(tt.langs...)
		if l.Language() != tt.tag {
			t.Errorf("%v: language = %v, want %v", tt.langs, l.Language(), tt.tag)
		}
		if got := l.BackTitle(); got != tt.backTitle {
			t.Errorf("%v: BackTitle = %q, want %q", tt.langs, got, tt.backTitle)
		}
		if got := l.BackAccessibilityLabel("Home"); got != tt.backLabel {
			t.Errorf("%v: BackAccessibilityLabel = %q, want %q", tt.langs, got, tt.backLabel)
		}
		if got := l.CloseAccessibilityLabel(); got != tt.close {
			t.Errorf("%v: CloseAccessibilityLabel = %q, want %q", tt.langs, got, tt.close)
		}
	}
}

func TestBackAccessibilityLabelWithoutTitle(t *testing.T) {
	if got := Default().BackAccessibilityLabel(""); got != "Go back" {
		t.Errorf("label = %q, want Go back", got)
	}
}

func TestSupported(t *testing.T) {
	if got := len(Supported()); got != 4 {
		t.Errorf("supported languages = %d, want 4", got)
	}
}
