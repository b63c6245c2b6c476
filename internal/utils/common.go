// Package utils provides shared utility functions used across multiple packages.
package utils

import (
	"strconv"
	"strings"
)

// BoolFromString parses a permissive boolean such as "1", "true", "yes" or "on".
// Anything else is false.
func BoolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// JSONPointerToPath renders a JSON Pointer (RFC 6901) as a dotted path with
// bracketed array indices, so "#/0/title" becomes "[0].title".
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")

	var b strings.Builder
	for _, seg := range strings.Split(ptr, "/") {
		seg = pointerUnescaper.Replace(seg)
		switch {
		case seg == "":
		case isIndex(seg):
			b.WriteString("[" + seg + "]")
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
