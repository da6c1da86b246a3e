package ignore

import (
	"regexp"
	"strings"
)

// translateGlobPattern converts a shell-glob pattern into an anchored regular
// expression source string. The semantics are filename-style: `*` matches any
// run of characters including path separators, `?` matches a single character,
// and bracketed character classes pass through with `!` negation converted.
func translateGlobPattern(globPattern string) string {
	var expression strings.Builder
	expression.WriteString("^")
	patternRunes := []rune(globPattern)
	for runeIndex := 0; runeIndex < len(patternRunes); runeIndex++ {
		switch currentRune := patternRunes[runeIndex]; currentRune {
		case '*':
			expression.WriteString(".*")
		case '?':
			expression.WriteString(".")
		case '[':
			classEnd := findCharacterClassEnd(patternRunes, runeIndex)
			if classEnd < 0 {
				expression.WriteString(regexp.QuoteMeta("["))
				continue
			}
			expression.WriteString(buildCharacterClass(patternRunes[runeIndex+1 : classEnd]))
			runeIndex = classEnd
		default:
			expression.WriteString(regexp.QuoteMeta(string(currentRune)))
		}
	}
	expression.WriteString("$")
	return expression.String()
}

// findCharacterClassEnd returns the index of the closing bracket for the class
// opening at openIndex, or -1 when the class never closes. An immediate `]`
// (possibly after `!`) belongs to the class body, mirroring shell behavior.
func findCharacterClassEnd(patternRunes []rune, openIndex int) int {
	scanIndex := openIndex + 1
	if scanIndex < len(patternRunes) && patternRunes[scanIndex] == '!' {
		scanIndex++
	}
	if scanIndex < len(patternRunes) && patternRunes[scanIndex] == ']' {
		scanIndex++
	}
	for scanIndex < len(patternRunes) {
		if patternRunes[scanIndex] == ']' {
			return scanIndex
		}
		scanIndex++
	}
	return -1
}

// buildCharacterClass renders the body of a glob character class as a regular
// expression class, converting leading `!` to `^` and escaping as needed.
func buildCharacterClass(classBody []rune) string {
	var classExpression strings.Builder
	classExpression.WriteString("[")
	bodyText := string(classBody)
	bodyText = strings.ReplaceAll(bodyText, `\`, `\\`)
	if strings.HasPrefix(bodyText, "!") {
		bodyText = "^" + bodyText[1:]
	} else if strings.HasPrefix(bodyText, "^") {
		bodyText = `\^` + bodyText[1:]
	}
	classExpression.WriteString(bodyText)
	classExpression.WriteString("]")
	return classExpression.String()
}

// compileGlob compiles a glob pattern into a matcher regular expression.
// Patterns that fail to compile match nothing.
func compileGlob(globPattern string) *regexp.Regexp {
	compiled, compileError := regexp.Compile(translateGlobPattern(globPattern))
	if compileError != nil {
		return nil
	}
	return compiled
}
