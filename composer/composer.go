// Package composer derives the post title and slug from the selected
// prompt and assembles the structured post document. Title and slug are
// always produced together from the same source string, so the slug is
// guaranteed to be the title's normalized form.
package composer

import (
	"fmt"
	"strings"
	"time"

	"snippet-bot/contentstore"
)

// CodeLanguage is the fixed language tag on every code block, regardless
// of what the model actually produced.
const CodeLanguage = "javascript"

// DocumentType is the store schema type of the persisted aggregate.
const DocumentType = "post"

// TitleFor builds the post title from the second word of the prompt plus
// the date of now. Prompts shorter than two words fall back to the first
// available word.
func TitleFor(prompt string, now time.Time) string {
	words := strings.Fields(prompt)
	subject := "snippet"
	switch {
	case len(words) >= 2:
		subject = words[1]
	case len(words) == 1:
		subject = words[0]
	}
	return fmt.Sprintf("%s snippet %s", subject, now.Format("2006-01-02"))
}

// Input carries everything a finished pipeline run produced.
type Input struct {
	Title       string
	Snippet     string
	Explanation string

	// ImageAssetID is empty when image acquisition degraded.
	ImageAssetID string

	AuthorID    string
	CategoryID  string
	PublishedAt time.Time
}

// Compose assembles the post aggregate: announcement, greeting, the code
// block carrying the snippet, the explanation, and a closing call to
// action.
func Compose(in Input) contentstore.PostDocument {
	body := []any{
		contentstore.TextBlock(fmt.Sprintf("We've cooked up a fresh code snippet for you: %s.", in.Title)),
		contentstore.TextBlock("Hello devs! Here is today's automatically generated JavaScript snippet."),
		contentstore.NewCodeBlock(CodeLanguage, in.Snippet),
		contentstore.TextBlock(fmt.Sprintf("The function above was generated from a prompt asking the model to %s.", in.Explanation)),
		contentstore.TextBlock("Come back tomorrow for another snippet, and happy coding!"),
	}

	doc := contentstore.PostDocument{
		Type:        DocumentType,
		Title:       in.Title,
		Slug:        contentstore.NewSlug(Slugify(in.Title)),
		Author:      contentstore.NewReference(in.AuthorID),
		Categories:  []contentstore.Reference{contentstore.NewReference(in.CategoryID)},
		PublishedAt: in.PublishedAt,
		Body:        body,
	}
	if in.ImageAssetID != "" {
		doc.MainImage = contentstore.NewImage(in.ImageAssetID)
	}
	return doc
}
