package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "550e8400-e29b-41d4-a716-446655440000"

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple title", "Making Slugs by Hand", "making-slugs-by-hand"},
		{"uppercase", "HELLO WORLD", "hello-world"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"diacritics", "Café & Restaurant", "cafe-restaurant"},
		{"vietnamese", "Nguyễn Nhật Ánh", "nguyen-nhat-anh"},
		{"multiple spaces", "too   many    spaces", "too-many-spaces"},
		{"leading trailing", "  -- padded -- ", "padded"},
		{"only punctuation", "!!!", ""},
		{"empty", "", ""},
		{"digits kept", "Top 10 Posts of 2026", "top-10-posts-of-2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateSlug(tt.input))
		})
	}
}

func TestSlugUUID_NoTruncationNeeded(t *testing.T) {
	got := SlugUUID("", "Making Slugs by Hand", testToken, 100)
	assert.Equal(t, "making-slugs-by-hand-"+testToken, got)
}

func TestSlugUUID_TruncatesToBudget(t *testing.T) {
	// 40 - 36 - 1 = 3 runes left for the slug portion.
	got := SlugUUID("", "Making Slugs by Hand", testToken, 40)
	assert.Equal(t, "mak-"+testToken, got)
	assert.Len(t, got, 40)
}

func TestSlugUUID_Idempotent(t *testing.T) {
	existing := "foo-" + testToken

	// Title changed after first save: the identifier must not move.
	got := SlugUUID(existing, "A Completely Different Title", testToken, 100)
	assert.Equal(t, existing, got)
}

func TestSlugUUID_Deterministic(t *testing.T) {
	first := SlugUUID("", "Some Title", testToken, 100)
	second := SlugUUID("", "Some Title", testToken, 100)
	assert.Equal(t, first, second)
}

func TestSlugUUID_DegenerateTitle(t *testing.T) {
	// Title normalizes to nothing; the identifier degrades to "-<token>".
	got := SlugUUID("", "!!!", testToken, 100)
	assert.Equal(t, "-"+testToken, got)
}

func TestSlugUUID_DistinctTokensDistinctSlugs(t *testing.T) {
	k1 := uuid.New().String()
	k2 := uuid.New().String()
	require.NotEqual(t, k1, k2)

	s1 := SlugUUID("", "Same Title", k1, 100)
	s2 := SlugUUID("", "Same Title", k2, 100)

	assert.NotEqual(t, s1, s2)
	assert.True(t, strings.HasSuffix(s1, k1))
	assert.True(t, strings.HasSuffix(s2, k2))
}

func TestSlugUUID_Properties(t *testing.T) {
	urlSafe := regexp.MustCompile(`^[a-z0-9-]+$`)

	titles := []string{
		"short",
		"A Very Long Title That Will Definitely Exceed Any Reasonable Slug Budget When Combined With A UUID Suffix",
		"Tiếng Việt có dấu",
		"!!!",
		"Mixed CASE & Punctuation: yes/no?",
	}

	for _, maxLen := range []int{38, 40, 60, 100} {
		for _, title := range titles {
			token := uuid.New().String()
			got := SlugUUID("", title, token, maxLen)

			assert.LessOrEqual(t, len(got), maxLen, "title=%q maxLen=%d", title, maxLen)
			assert.True(t, strings.HasSuffix(got, token), "token must survive truncation")
			assert.True(t, urlSafe.MatchString(got), "got %q", got)
			assert.NotEmpty(t, got)
		}
	}
}

func TestRemoveDiacritics(t *testing.T) {
	assert.Equal(t, "Nguyen Nhat Anh", RemoveDiacritics("Nguyễn Nhật Ánh"))
	assert.Equal(t, "uber", RemoveDiacritics("über"))
	assert.Equal(t, "EQUIPE", RemoveDiacritics("ÉQUIPE"))
	assert.Equal(t, "plain ascii", RemoveDiacritics("plain ascii"))
}
