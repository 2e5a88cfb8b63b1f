package helper

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
	reSpaces   = regexp.MustCompile(`\s+`)
)

// Slugify mengubah teks bebas jadi slug [a-z0-9-], hilangkan diakritik,
// kompres "-", trim ujung, enforce maxLen (default 100 jika <=0), fallback "item".
// Dipakai untuk nama file export.
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = stripMarks(strings.ToLower(strings.TrimSpace(s)))

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > maxLen {
		rs := []rune(s)
		s = strings.Trim(string(rs[:maxLen]), "-")
	}
	if s == "" {
		s = "item"
	}
	return s
}

// NormalizeCode: kode mata pelajaran dibandingkan setelah NFKC + trim + upper,
// jadi "mat-101", "ＭＡＴ-101" dan " MAT-101 " dianggap sama.
func NormalizeCode(s string) string {
	s = norm.NFKC.String(strings.TrimSpace(s))
	s = reSpaces.ReplaceAllString(s, "")
	return strings.ToUpper(s)
}

// NormalizeUsername: NFKC + trim + lower.
func NormalizeUsername(s string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(s)))
}

// Strip diakritik (é → e, dll)
func stripMarks(s string) string {
	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // mark nonspacing
			continue
		}
		buf = append(buf, r)
	}
	return string(buf)
}
