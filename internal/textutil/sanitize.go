package textutil

import "strings"

// baseNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var baseNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeBaseName replaces filesystem-unsafe characters in a subtitle base
// name derived from a media file. Slashes, backslashes, colons, and asterisks
// become dashes; other unsafe characters are removed. The result is trimmed of
// leading/trailing whitespace.
func SanitizeBaseName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(baseNameReplacer.Replace(name))
}
