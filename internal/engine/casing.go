package engine

import (
	"unicode"
	"unicode/utf8"

	"nkrane/internal/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DetectCase classifies the capitalization of a matched surface.
// Uncased runes are ignored; a surface without cased letters is mixed.
func DetectCase(surface string) domain.CasePattern {
	var upper, lower int
	seenFirst := false
	firstUpper := false
	restLower := true

	for _, r := range surface {
		isUpper := unicode.IsUpper(r)
		isLower := unicode.IsLower(r)
		if !isUpper && !isLower {
			continue
		}

		if isUpper {
			upper++
		} else {
			lower++
		}

		if !seenFirst {
			seenFirst = true
			firstUpper = isUpper
		} else if isUpper {
			restLower = false
		}
	}

	switch {
	case upper == 0 && lower == 0:
		return domain.CaseMixed
	case lower == 0:
		return domain.CaseUpper
	case upper == 0:
		return domain.CaseLower
	case firstUpper && restLower:
		return domain.CaseCapitalized
	case isTitle(surface):
		return domain.CaseTitle
	default:
		return domain.CaseMixed
	}
}

// isTitle reports whether surface has at least two words and each word
// is an upper-case letter followed by lower-case ones
func isTitle(surface string) bool {
	words := 0
	inWord := false
	wordStart := true

	for _, r := range surface {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			inWord = false
			continue
		}
		if !inWord {
			inWord = true
			wordStart = true
		}
		if !unicode.IsUpper(r) && !unicode.IsLower(r) {
			continue
		}
		if wordStart {
			if !unicode.IsUpper(r) {
				return false
			}
			wordStart = false
			words++
			continue
		}
		if unicode.IsUpper(r) {
			return false
		}
	}

	return words > 1
}

// ApplyCase renders target in the given pattern using the case rules of
// lang, the target language code. Lower and mixed surfaces keep target as
// stored; title surfaces only get an upper-case first letter.
func ApplyCase(pattern domain.CasePattern, target, lang string) string {
	tag := language.Make(lang)

	switch pattern {
	case domain.CaseUpper:
		return cases.Upper(tag).String(target)
	case domain.CaseCapitalized:
		return titleFirst(cases.Lower(tag).String(target), tag)
	case domain.CaseTitle:
		return titleFirst(target, tag)
	default:
		return target
	}
}

func titleFirst(s string, tag language.Tag) string {
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Title(tag, cases.NoLower).String(s[:size]) + s[size:]
}
