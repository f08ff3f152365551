// Package collation provides Turkish-locale string ordering for region and
// pharmacy labels, so accented characters (ç, ğ, ı, İ, ö, ş, ü) sort the way
// a Turkish speaker expects rather than by code point.
package collation

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortLabels sorts labels in place under Turkish collation. A collator is
// built per call because collate.Collator is not safe for concurrent use.
func SortLabels(labels []string) {
	collate.New(language.Turkish).SortStrings(labels)
}

// Compare reports the Turkish-collated ordering of a and b, with the usual
// -1/0/+1 contract.
func Compare(a, b string) int {
	return collate.New(language.Turkish).CompareString(a, b)
}
