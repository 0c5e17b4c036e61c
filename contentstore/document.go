package contentstore

import (
	"time"

	"github.com/google/uuid"
)

// Document types mirror the store's structured-document schema: typed
// blocks, references, a slug object and a publish timestamp. The bot only
// creates documents, so no unmarshalling of body blocks is needed.

// Reference points at another document in the store.
type Reference struct {
	Type string `json:"_type"`
	Ref  string `json:"_ref"`
}

func NewReference(id string) Reference {
	return Reference{Type: "reference", Ref: id}
}

// Slug wraps the URL-safe form of the title.
type Slug struct {
	Type    string `json:"_type"`
	Current string `json:"current"`
}

func NewSlug(current string) Slug {
	return Slug{Type: "slug", Current: current}
}

// Image references an uploaded image asset.
type Image struct {
	Type  string    `json:"_type"`
	Asset Reference `json:"asset"`
}

func NewImage(assetID string) *Image {
	return &Image{Type: "image", Asset: NewReference(assetID)}
}

// Span is one run of text inside a block.
type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

// Block is a narrative text block.
type Block struct {
	Type     string `json:"_type"`
	Key      string `json:"_key"`
	Style    string `json:"style"`
	Children []Span `json:"children"`
	MarkDefs []any  `json:"markDefs"`
}

// TextBlock builds a normal-style block holding a single span.
func TextBlock(text string) Block {
	return Block{
		Type:  "block",
		Key:   blockKey(),
		Style: "normal",
		Children: []Span{{
			Type:  "span",
			Key:   blockKey(),
			Text:  text,
			Marks: []string{},
		}},
		MarkDefs: []any{},
	}
}

// CodeBlock carries the generated snippet. The language tag is fixed by the
// caller regardless of what the model actually produced.
type CodeBlock struct {
	Type     string `json:"_type"`
	Key      string `json:"_key"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

func NewCodeBlock(language, code string) CodeBlock {
	return CodeBlock{
		Type:     "code",
		Key:      blockKey(),
		Language: language,
		Code:     code,
	}
}

// PostDocument is the aggregate persisted per pipeline run. MainImage is
// nil when image acquisition degraded.
type PostDocument struct {
	Type        string      `json:"_type"`
	Title       string      `json:"title"`
	Slug        Slug        `json:"slug"`
	Author      Reference   `json:"author"`
	MainImage   *Image      `json:"mainImage,omitempty"`
	Categories  []Reference `json:"categories"`
	PublishedAt time.Time   `json:"publishedAt"`
	Body        []any       `json:"body"`
}

func blockKey() string {
	return uuid.NewString()[:12]
}
