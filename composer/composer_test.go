package composer_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snippet-bot/composer"
	"snippet-bot/contentstore"
	"snippet-bot/prompts"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name  string
		title string
		want  string
	}{
		{"plain words", "a snippet 2024-01-01", "a-snippet-2024-01-01"},
		{"uppercase", "JavaScript Snippet", "javascript-snippet"},
		{"punctuation collapsed", "Hello,   world!! (again)", "hello-world-again"},
		{"leading and trailing junk", "  --Fancy Title--  ", "fancy-title"},
		{"empty", "", ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := composer.Slugify(testCase.title)
			assert.Equal(t, testCase.want, got)
			// deterministic
			assert.Equal(t, got, composer.Slugify(testCase.title))
		})
	}
}

func TestSlugifyShapeForEveryPromptTitle(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	for _, entry := range prompts.Table {
		slug := composer.Slugify(composer.TitleFor(entry.Prompt, now))
		assert.Regexp(t, slugShape, slug)
		assert.NotContains(t, slug, " ")
	}
}

func TestTitleFor(t *testing.T) {
	now := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, "a snippet 2024-01-02",
		composer.TitleFor("Write a JavaScript function to reverse a string.", now))
	assert.Equal(t, "reverse snippet 2024-01-02", composer.TitleFor("reverse", now))
	assert.Equal(t, "snippet snippet 2024-01-02", composer.TitleFor("", now))
}

func TestComposeBuildsFullAggregate(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	prompt := "Write a JavaScript function to reverse a string."
	title := composer.TitleFor(prompt, now)

	doc := composer.Compose(composer.Input{
		Title:        title,
		Snippet:      "function reverse(s){return s.split('').reverse().join('')}",
		Explanation:  "reverse a string",
		ImageAssetID: "image-abc",
		AuthorID:     "author-1",
		CategoryID:   "category-1",
		PublishedAt:  now,
	})

	assert.Equal(t, "post", doc.Type)
	assert.Equal(t, title, doc.Title)
	assert.Equal(t, composer.Slugify(title), doc.Slug.Current)
	assert.Equal(t, "author-1", doc.Author.Ref)
	require.NotNil(t, doc.MainImage)
	assert.Equal(t, "image-abc", doc.MainImage.Asset.Ref)
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, "category-1", doc.Categories[0].Ref)
	assert.Equal(t, now, doc.PublishedAt)

	require.Len(t, doc.Body, 5)
	code, ok := doc.Body[2].(contentstore.CodeBlock)
	require.True(t, ok, "third block must be the code block")
	assert.Equal(t, composer.CodeLanguage, code.Language)
	assert.Equal(t, "function reverse(s){return s.split('').reverse().join('')}", code.Code)

	explanation, ok := doc.Body[3].(contentstore.Block)
	require.True(t, ok)
	require.Len(t, explanation.Children, 1)
	assert.Contains(t, explanation.Children[0].Text, "reverse a string")
}

func TestComposeWithoutImage(t *testing.T) {
	doc := composer.Compose(composer.Input{
		Title:       "a snippet 2024-01-01",
		Snippet:     "function f(){}",
		Explanation: "do something",
		AuthorID:    "author-1",
		CategoryID:  "category-1",
		PublishedAt: time.Now(),
	})

	assert.Nil(t, doc.MainImage)
}
