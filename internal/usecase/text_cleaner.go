package usecase

import (
	"regexp"
	"strings"
)

// Compiled regex patterns for OCR text cleanup
var (
	// Matches emoji and pictograph codepoints that corrupt downstream matching:
	// emoticons, misc symbols, misc symbols & pictographs, transport symbols,
	// regional indicator (flag) sequences, dingbats, supplemental symbols
	emojiPattern = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E6}-\x{1F1FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}\x{1F900}-\x{1F9FF}]`)

	// Collapses any whitespace run (including newlines) into a single space
	whitespacePattern = regexp.MustCompile(`\s+`)

	// Matches a vertical bar standing alone between spaces or line boundaries,
	// a common OCR misread of the letter "I"
	standaloneBarPattern = regexp.MustCompile(`(^|\s)\|(\s|$)`)
)

// CleanText normalizes raw OCR text for parsing. It strips emoji/pictograph
// codepoints, collapses whitespace, and applies two narrow OCR artifact
// corrections: a standalone "|" becomes "I", and the capital letter "O" is
// folded into the digit "0" so prices like "$1O.5O" read as numbers again.
// The O/0 fold is lossy in the other direction ("Onion" becomes "0nion");
// that trade-off is deliberate and should not be "fixed" here.
// CleanText never fails; empty or all-emoji input yields an empty string.
func CleanText(text string) string {
	cleaned := emojiPattern.ReplaceAllString(text, "")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = standaloneBarPattern.ReplaceAllString(cleaned, "${1}I${2}")
	cleaned = strings.ReplaceAll(cleaned, "O", "0")
	return cleaned
}
