package machine

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NameProblem identifies one violation of the machine naming convention.
type NameProblem int

const (
	NameEmpty NameProblem = iota
	NameNotLowercase
	NameHasSpace
	NameHasUnderscore
	NameBadStart
	NameBadChar
)

var titleCaser = cases.Title(language.English)

// NameProblems returns every convention violation in name, in check order.
// An empty name yields only NameEmpty.
func NameProblems(name string) []NameProblem {
	if name == "" {
		return []NameProblem{NameEmpty}
	}

	var problems []NameProblem
	if name != strings.ToLower(name) {
		problems = append(problems, NameNotLowercase)
	}
	if strings.Contains(name, " ") {
		problems = append(problems, NameHasSpace)
	}
	if strings.Contains(name, "_") {
		problems = append(problems, NameHasUnderscore)
	}

	runes := []rune(name)
	if !unicode.IsLetter(runes[0]) {
		problems = append(problems, NameBadStart)
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' {
			problems = append(problems, NameBadChar)
			break
		}
	}
	return problems
}

// ValidName reports whether name is lowercase, hyphenated, and starts with a letter.
func ValidName(name string) bool {
	return len(NameProblems(name)) == 0
}

// Title converts a machine name to its display title ("demo-bot" → "Demo Bot").
func Title(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "-", " "))
}
