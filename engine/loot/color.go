package loot

import (
	"strings"
	"unicode"
)

// ColorMarker is the display escape that starts a color or format code.
const ColorMarker = '§'

const colorCodes = "0123456789AaBbCcDdEeFfKkLlMmNnOoRrXx"

// TranslateColorCodes replaces each alt marker that precedes a valid color
// or format code with ColorMarker and lowercases the code. Markers that do
// not precede a code are left alone.
func TranslateColorCodes(alt rune, text string) string {
	runes := []rune(text)
	for i := 0; i < len(runes)-1; i++ {
		if runes[i] == alt && strings.ContainsRune(colorCodes, runes[i+1]) {
			runes[i] = ColorMarker
			runes[i+1] = unicode.ToLower(runes[i+1])
		}
	}
	return string(runes)
}

// StripColorCodes removes ColorMarker sequences from text.
func StripColorCodes(text string) string {
	var sb strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] == ColorMarker && i+1 < len(runes) {
			i++
			continue
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}
