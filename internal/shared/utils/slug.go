package utils

import (
	"regexp"
	"strings"
)

var (
	// invalidSlugChars matches everything that may not appear in a URL
	// path segment once the slug is lowercased and hyphenated.
	invalidSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)

	// repeatedHyphens collapses runs of hyphens left behind by removed
	// punctuation.
	repeatedHyphens = regexp.MustCompile(`-+`)
)

// GenerateSlug converts an arbitrary title into a URL-friendly slug.
//
//	"Making Slugs by Hand"  → "making-slugs-by-hand"
//	"Café & Restaurant"     → "cafe-restaurant"
//	"!!!"                   → ""
func GenerateSlug(input string) string {
	// Fold accented characters to their ASCII base first, otherwise the
	// character filter below would drop them entirely.
	ascii := RemoveDiacritics(input)

	lower := strings.ToLower(ascii)

	// Collapse all whitespace runs to single hyphens.
	hyphenated := strings.Join(strings.Fields(lower), "-")

	// Strip everything that is not a-z, 0-9 or hyphen.
	cleaned := invalidSlugChars.ReplaceAllString(hyphenated, "")

	// "hello--world" → "hello-world"
	normalized := repeatedHyphens.ReplaceAllString(cleaned, "-")

	return strings.Trim(normalized, "-")
}

// SlugUUID derives the persisted URL identifier for a record from its
// title and its stable UUID token.
//
// If current is already set it is returned unchanged, even when the title
// has been edited since: published URLs never move. Otherwise the
// slugified title is truncated so that slug + "-" + token fits inside
// maxLen, and the two are concatenated. Truncation may cut mid-word.
//
// Uniqueness comes from the token suffix alone, so the result needs no
// lookup against existing records. maxLen must leave room for the token
// and the separator; config.Validate enforces that at startup.
func SlugUUID(current, title, token string, maxLen int) string {
	if current != "" {
		return current
	}

	budget := maxLen - len(token) - 1
	if budget < 0 {
		budget = 0
	}

	slug := GenerateSlug(title)
	if len(slug) > budget {
		slug = slug[:budget]
	}

	return slug + "-" + token
}

// diacriticFold maps accented Latin characters to their ASCII base.
// Lowercase entries only; RemoveDiacritics handles uppercase variants
// through the same table.
var diacriticFold = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'ă': 'a', 'ā': 'a', 'ạ': 'a', 'ả': 'a', 'ắ': 'a', 'ằ': 'a',
	'ẳ': 'a', 'ẵ': 'a', 'ặ': 'a', 'ấ': 'a', 'ầ': 'a', 'ẩ': 'a',
	'ẫ': 'a', 'ậ': 'a',
	'ç': 'c', 'ć': 'c', 'č': 'c',
	'đ': 'd', 'ď': 'd',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e', 'ē': 'e', 'ė': 'e',
	'ę': 'e', 'ẹ': 'e', 'ẻ': 'e', 'ẽ': 'e', 'ế': 'e', 'ề': 'e',
	'ể': 'e', 'ễ': 'e', 'ệ': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i', 'ī': 'i', 'į': 'i',
	'ỉ': 'i', 'ĩ': 'i', 'ị': 'i',
	'ł': 'l',
	'ñ': 'n', 'ń': 'n', 'ň': 'n',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o', 'ø': 'o',
	'ō': 'o', 'ơ': 'o', 'ọ': 'o', 'ỏ': 'o', 'ố': 'o', 'ồ': 'o',
	'ổ': 'o', 'ỗ': 'o', 'ộ': 'o', 'ớ': 'o', 'ờ': 'o', 'ở': 'o',
	'ỡ': 'o', 'ợ': 'o',
	'ś': 's', 'š': 's',
	'ß': 's',
	'ť': 't',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u', 'ū': 'u', 'ů': 'u',
	'ư': 'u', 'ụ': 'u', 'ủ': 'u', 'ũ': 'u', 'ứ': 'u', 'ừ': 'u',
	'ử': 'u', 'ữ': 'u', 'ự': 'u',
	'ý': 'y', 'ÿ': 'y', 'ỳ': 'y', 'ỷ': 'y', 'ỹ': 'y', 'ỵ': 'y',
	'ź': 'z', 'ż': 'z', 'ž': 'z',
}

// RemoveDiacritics transliterates accented Latin characters to plain
// ASCII. Characters without a mapping pass through unchanged.
func RemoveDiacritics(input string) string {
	result := make([]rune, 0, len(input))

	for _, r := range input {
		if base, ok := diacriticFold[r]; ok {
			result = append(result, base)
			continue
		}
		if lower := unicodeToLower(r); lower != r {
			if base, ok := diacriticFold[lower]; ok {
				result = append(result, unicodeToUpper(base))
				continue
			}
		}
		result = append(result, r)
	}

	return string(result)
}

func unicodeToLower(r rune) rune {
	return []rune(strings.ToLower(string(r)))[0]
}

func unicodeToUpper(r rune) rune {
	return []rune(strings.ToUpper(string(r)))[0]
}
