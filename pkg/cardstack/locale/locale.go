// Package locale provides the translated strings the stack renders on its
// own: the default back button title and the accessibility labels of the
// back and close buttons.
package locale

import (
	"embed"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/cardstack/pkg/cardstack/constants"
	"github.com/BrandonKowalski/cardstack/pkg/cardstack/internal"
)

//go:embed messages/*.toml
var messageFiles embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle

	defaultOnce      sync.Once
	defaultLocalizer *Localizer
)

func sharedBundle() *i18n.Bundle {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		files, err := fs.Glob(messageFiles, "messages/*.toml")
		if err != nil {
			internal.GetInternalLogger().Error("Failed to list message files", "error", err)
			return
		}
		for _, f := range files {
			if _, err := bundle.LoadMessageFileFS(messageFiles, f); err != nil {
				internal.GetInternalLogger().Error("Failed to load message file", "file", f, "error", err)
			}
		}
	})
	return bundle
}

// Localizer resolves stack strings for one language preference list.
type Localizer struct {
	tag       language.Tag
	localizer *i18n.Localizer
}

// New creates a Localizer for the given language preferences, most
// preferred first. Tags may be BCP 47 ("pt-BR") or POSIX ("de_DE.UTF-8").
// Unsupported languages fall back to English.
func New(langs ...string) *Localizer {
	b := sharedBundle()

	normalized := make([]string, 0, len(langs))
	for _, l := range langs {
		if n := Normalize(l); n != "" {
			normalized = append(normalized, n)
		}
	}

	tag := language.English
	if len(normalized) > 0 {
		matcher := language.NewMatcher(b.LanguageTags())
		matched, _ := language.MatchStrings(matcher, normalized...)
		base, _ := matched.Base()
		tag = language.Make(base.String())
	}

	return &Localizer{
		tag:       tag,
		localizer: i18n.NewLocalizer(b, normalized...),
	}
}

// Default returns the shared English Localizer.
func Default() *Localizer {
	defaultOnce.Do(func() {
		defaultLocalizer = New(language.English.String())
	})
	return defaultLocalizer
}

// FromEnv creates a Localizer from the LANG environment variable.
func FromEnv() *Localizer {
	return New(os.Getenv(constants.LanguageEnvVar))
}

// Normalize converts a POSIX locale name into a BCP 47 tag. The C and POSIX
// locales carry no language and normalize to "".
func Normalize(lang string) string {
	lang = strings.TrimSpace(lang)
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "" || lang == "C" || lang == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(lang, "_", "-")
}

// Language returns the matched language.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// Supported lists the languages with bundled messages.
func Supported() []language.Tag {
	return sharedBundle().LanguageTags()
}

func (l *Localizer) localize(id, fallback string, data map[string]any) string {
	s, err := l.localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, Other: fallback},
		TemplateData:   data,
	})
	if err != nil {
		internal.GetInternalLogger().Warn("Missing translation", "id", id, "language", l.tag.String(), "error", err)
		if s == "" {
			return fallback
		}
	}
	return s
}

// BackTitle is the back button label used when the previous screen has no title.
func (l *Localizer) BackTitle() string {
	return l.localize("BackTitle", "Back", nil)
}

// BackAccessibilityLabel describes a back button labelled title.
func (l *Localizer) BackAccessibilityLabel(title string) string {
	if title == "" {
		return l.localize("GoBackAccessibilityLabel", "Go back", nil)
	}
	return l.localize("BackAccessibilityLabel", "{{.Title}}, back", map[string]any{"Title": title})
}

// CloseAccessibilityLabel describes the close button of a modal stack.
func (l *Localizer) CloseAccessibilityLabel() string {
	return l.localize("CloseAccessibilityLabel", "Close", nil)
}
