// Package textstat provides the word and character counts displayed under
// each separated field.
package textstat

import (
	"strings"
	"unicode/utf8"
)

type Stats struct {
	Words int `json:"words"`
	Chars int `json:"chars"`
}

func Count(text string) Stats {
	return Stats{
		Words: len(strings.Fields(text)),
		Chars: utf8.RuneCountInString(text),
	}
}
