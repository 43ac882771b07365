package common

import (
	"fmt"
	"strings"
)

// Language is the target language of a humanized rewrite
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageArabic  Language = "Arabic"
)

// DefaultLanguage is selected when a session starts
const DefaultLanguage = LanguageEnglish

// Tone is the register a humanized rewrite is written in
type Tone string

const (
	ToneAcademic Tone = "Academic"
	ToneCasual   Tone = "Casual"
	ToneFormal   Tone = "Formal"
	ToneCreative Tone = "Creative"
)

// DefaultTone is selected when a session starts
const DefaultTone = ToneCasual

// Languages returns every supported language in display order
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageArabic}
}

// Tones returns every supported tone in display order
func Tones() []Tone {
	return []Tone{ToneAcademic, ToneCasual, ToneFormal, ToneCreative}
}

// String returns the display name
func (l Language) String() string {
	return string(l)
}

// Valid reports whether l is one of the supported languages
func (l Language) Valid() bool {
	for _, known := range Languages() {
		if l == known {
			return true
		}
	}
	return false
}

// Next returns the language after l, wrapping around
func (l Language) Next() Language {
	all := Languages()
	for i, known := range all {
		if known == l {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultLanguage
}

// String returns the display name
func (t Tone) String() string {
	return string(t)
}

// Valid reports whether t is one of the supported tones
func (t Tone) Valid() bool {
	for _, known := range Tones() {
		if t == known {
			return true
		}
	}
	return false
}

// Next returns the tone after t, wrapping around
func (t Tone) Next() Tone {
	all := Tones()
	for i, known := range all {
		if known == t {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultTone
}

// ParseLanguage parses a display name case-insensitively
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	for _, l := range Languages() {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language: %q (must be one of: %s)", s, joinLanguages())
}

// ParseTone parses a display name case-insensitively
func ParseTone(s string) (Tone, error) {
	s = strings.TrimSpace(s)
	for _, t := range Tones() {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unsupported tone: %q (must be one of: %s)", s, joinTones())
}

func joinLanguages() string {
	names := make([]string, 0, len(Languages()))
	for _, l := range Languages() {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}

func joinTones() string {
	names := make([]string, 0, len(Tones()))
	for _, t := range Tones() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
