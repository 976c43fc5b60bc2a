// Package token splits raw command lines into argument lists.
package token

import "strings"

// Delimiters are the characters that separate arguments on a command
// line: space, tab, carriage return, newline, and bell.
const Delimiters = " \t\r\n\a"

// Split breaks line into an ordered list of arguments. Any run of
// delimiter characters acts as a single separator, so the result never
// contains empty strings. There is no quoting or escaping; a delimiter
// can never appear inside an argument.
func Split(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return strings.ContainsRune(Delimiters, r)
	})
}
