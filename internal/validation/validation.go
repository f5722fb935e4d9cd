// Package validation gates user input before any prompt is built. It is
// what keeps the system a mentor rather than a code generator.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinIdeaLength = 10
	MaxIdeaLength = 2000
)

type Code string

const (
	CodeTooShort    Code = "too_short"
	CodeTooLong     Code = "too_long"
	CodeCodeRequest Code = "code_request"
	CodeGibberish   Code = "gibberish"
)

type ValidationError struct {
	Code       Code
	Message    string
	Suggestion string
}

func (e *ValidationError) Error() string { return e.Message }

var codeRequestPatterns = compilePatterns([]string{
	`\bgenerate\s+code\b`,
	`\bwrite\s+(the\s+)?code\b`,
	`\bcreate\s+(the\s+)?code\b`,
	`\bgive\s+me\s+(the\s+)?code\b`,
	`\bshow\s+me\s+(the\s+)?code\b`,
	`\bcode\s+for\b`,
	`\bsource\s+code\b`,
	`\bimplementation\s+code\b`,
	`\bprogramming\s+code\b`,
	`\bhtml\s+code\b`,
	`\bcss\s+code\b`,
	`\bjavascript\s+code\b`,
	`\bpython\s+code\b`,
	`\bjava\s+code\b`,
	`\bsql\s+quer(y|ies)\b`,
	`\bwrite\s+.*\s+function\b`,
	`\bwrite\s+.*\s+class\b`,
	`\bwrite\s+.*\s+script\b`,
	`\bdownload\s+.*\s+code\b`,
	`\bexport\s+.*\s+code\b`,
	`\bgenerate\s+.*\s+script\b`,
})

func compilePatterns(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

// ValidateIdea checks a project idea before it reaches a prompt. The
// returned error is always a *ValidationError.
func ValidateIdea(rawIdea string) error {
	cleaned := strings.Join(strings.Fields(rawIdea), " ")

	length := utf8.RuneCountInString(cleaned)
	if length < MinIdeaLength {
		return &ValidationError{
			Code:    CodeTooShort,
			Message: "Your idea is too short for us to understand.",
			Suggestion: "Please describe your project in at least one complete sentence. " +
				"For example: 'I want to build an app that helps students track their attendance.'",
		}
	}
	if length > MaxIdeaLength {
		return &ValidationError{
			Code:    CodeTooLong,
			Message: "Your idea is too long to process at once.",
			Suggestion: "Please summarize your main idea in a few sentences. " +
				"You can add more details during the interactive planning phase.",
		}
	}
	if phrase, ok := detectCodeRequest(cleaned); ok {
		return &ValidationError{
			Code:    CodeCodeRequest,
			Message: fmt.Sprintf("It looks like you're asking for code generation (%q).", phrase),
			Suggestion: "This system helps you PLAN and UNDERSTAND your project, not write code. " +
				"Try describing what your project should DO instead. " +
				"For example: 'A system that tracks student attendance' instead of 'Code for attendance system'.",
		}
	}
	if isGibberish(cleaned) {
		return &ValidationError{
			Code:    CodeGibberish,
			Message: "We couldn't understand your input.",
			Suggestion: "Please enter a real project idea in plain English. " +
				"Describe what problem you want to solve or what you want to build.",
		}
	}
	return nil
}

func detectCodeRequest(text string) (string, bool) {
	for _, pattern := range codeRequestPatterns {
		if match := pattern.FindString(text); match != "" {
			return match, true
		}
	}
	return "", false
}

// isGibberish flags keyboard mash. Two heuristics: almost no vowels in a
// long run of ASCII letters, or a high share of special characters. The
// vowel check only applies to mostly-ASCII text; ideas written in other
// scripts have no Latin vowels to count.
func isGibberish(text string) bool {
	noSpaces := strings.ToLower(strings.ReplaceAll(text, " ", ""))
	if noSpaces == "" {
		return true
	}
	vowels, ascii, special := 0, 0, 0
	total := 0
	for _, r := range noSpaces {
		total++
		if r < utf8.RuneSelf {
			ascii++
		}
		switch {
		case strings.ContainsRune("aeiou", r):
			vowels++
		// Combining marks (Devanagari matras and similar) count as part
		// of the word, not as special characters.
		case !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r):
			special++
		}
	}
	if ascii == total && float64(vowels)/float64(total) < 0.1 && total > 10 {
		return true
	}
	if float64(special)/float64(total) > 0.3 {
		return true
	}
	return false
}

// Sanitize collapses whitespace and caps the length.
func Sanitize(text string) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	if runes := []rune(cleaned); len(runes) > MaxIdeaLength {
		cleaned = string(runes[:MaxIdeaLength])
	}
	return strings.TrimSpace(cleaned)
}

// ValidateFeatureList rejects feature descriptions that look like code.
func ValidateFeatureList(features []string) error {
	codeIndicators := []string{"()", ";", "=>", "function", "def ", "class ", "{", "}"}
	for _, feature := range features {
		if len(feature) > 500 {
			return &ValidationError{
				Code:    CodeTooLong,
				Message: fmt.Sprintf("Feature description too long: %q...", truncate(feature, 50)),
			}
		}
		for _, ind := range codeIndicators {
			if strings.Contains(feature, ind) {
				return &ValidationError{
					Code:    CodeCodeRequest,
					Message: fmt.Sprintf("Feature %q looks like code. Please describe features in plain English.", truncate(feature, 50)),
				}
			}
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
