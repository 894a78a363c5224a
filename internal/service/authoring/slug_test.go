package authoring

import (
	"regexp"
	"testing"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Advanced Go Patterns":       "advanced-go-patterns",
		"Intro to ML!!":              "intro-to-ml",
		"  C++ & Rust: a primer!  ":  "c-rust-a-primer",
		"already-slugged":            "already-slugged",
		"Numbers 101":                "numbers-101",
		"___":                        "course",
		"":                           "course",
		"Много Unicode тут":          "unicode",
		"Chapter ٣ basics":           "chapter-basics",
	}
	for title, want := range cases {
		assert.Equal(t, want, Slugify(title), "title %q", title)
	}
}

func TestGenerateSlugShape(t *testing.T) {
	re := regexp.MustCompile(`^advanced-go-patterns-[a-z0-9]{5}$`)
	for i := 0; i < 20; i++ {
		slug := GenerateSlug("Advanced Go Patterns")
		require.Regexp(t, re, slug)
	}
}

func TestGenerateSlugSuffixVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateSlug("Same Title")] = true
	}
	// 50 draws from a 36^5 space colliding down to one value would mean the
	// suffix is not random at all.
	assert.Greater(t, len(seen), 1)
}

func TestValidateSnippets(t *testing.T) {
	assert.NoError(t, ValidateSnippets(nil))
	assert.NoError(t, ValidateSnippets([]models.CodeSnippet{
		{Language: "go", Code: "fmt.Println(42)"},
		{Language: "python", Code: "print(42)"},
	}))

	assert.ErrorIs(t, ValidateSnippets([]models.CodeSnippet{
		{Language: "", Code: "x"},
	}), app_errors.ErrInvalidSnippets)
	assert.ErrorIs(t, ValidateSnippets([]models.CodeSnippet{
		{Language: "go", Code: "   "},
	}), app_errors.ErrInvalidSnippets)
}
