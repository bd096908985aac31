// Package text provides rune-aware helpers shared by the summarization
// adapters and the summary use case.
package text

import "unicode/utf8"

// CountRunes counts the number of Unicode characters (runes) in the given text.
//
//	CountRunes("hello")   // 5
//	CountRunes("naïve")   // 5
//	CountRunes("日本語")    // 3
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// Truncate keeps the first maxRunes runes of text and appends suffix when
// anything was cut. Text that already fits is returned unchanged.
func Truncate(text string, maxRunes int, suffix string) string {
	if maxRunes < 0 {
		maxRunes = 0
	}
	count := 0
	for i := range text {
		if count == maxRunes {
			return text[:i] + suffix
		}
		count++
	}
	return text
}
