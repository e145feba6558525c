// Package language normalizes spoken-language hints and formats names for
// display. The transcriber wants bare ISO 639-1 codes, while scripts shout
// speaker names in capitals; both conversions live here.
package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var englishNames = display.English.Languages()

// Normalize parses a user-supplied language hint, accepting BCP 47 and
// ISO 639 codes ("en", "EN-us", "deu"), and returns the base ISO 639-1
// code the transcriber expects. English language names like "german" do
// not parse. Empty input stays empty, meaning auto-detect.
func Normalize(hint string) (string, error) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return "", nil
	}
	tag, err := language.Parse(hint)
	if err != nil {
		return "", fmt.Errorf("language hint %q: %w", hint, err)
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "", fmt.Errorf("language hint %q: unrecognized", hint)
	}
	return base.String(), nil
}

// DisplayName returns the English name for a language code, or the code
// itself when it cannot be resolved. Empty input means auto-detection.
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "auto-detect"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := englishNames.Name(tag); name != "" {
		return name
	}
	return code
}

var speakerCaser = cases.Title(language.English)

// DisplaySpeaker converts an all-caps script speaker label to title case
// for logs and reports. Subtitle output keeps the original capitals.
func DisplaySpeaker(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return speakerCaser.String(strings.ToLower(name))
}
