// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns catalog names into lowercase ASCII keys.
//
// Categories and locations store one next to their name, so "Tủ lạnh" and
// "Đồ khô" are kept as "tu-lanh" and "do-kho".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents splits letters from their marks and drops the marks.
var foldAccents = transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}), norm.NFC)

// strokeLetters have no decomposition, so NFD alone keeps them.
var strokeLetters = strings.NewReplacer("đ", "d", "Đ", "d", "ł", "l", "Ł", "l", "ø", "o", "Ø", "o")

// From returns the slug of name. Runs of anything other than ASCII letters
// and digits become a single hyphen; the result never starts or ends with one
// and is empty when name has no usable characters.
func From(name string) string {
	folded, _, err := transform.String(foldAccents, strokeLetters.Replace(name))
	if err != nil {
		folded = name
	}

	var builder strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}
	return builder.String()
}
