// Package prompts owns the fixed prompt catalog the bot generates from.
// Prompt and explanation live in one paired table so the two can never
// drift apart.
package prompts

import "math/rand/v2"

// Entry pairs a generation prompt with the human-readable explanation
// interpolated into the published post.
type Entry struct {
	Prompt      string
	Explanation string
}

// FallbackExplanation is used when a prompt outside the table is resolved.
// That only happens when a caller bypasses Pick, and is a silent degraded
// case rather than an error.
const FallbackExplanation = "do something useful with JavaScript"

// Table is the fixed catalog, loaded once and never mutated.
var Table = []Entry{
	{"Write a JavaScript function to reverse a string.", "reverse a string"},
	{"Write a JavaScript function to check if a number is prime.", "check if a number is prime"},
	{"Write a JavaScript function to remove duplicates from an array.", "remove duplicates from an array"},
	{"Write a JavaScript function to flatten a nested array.", "flatten a nested array"},
	{"Write a JavaScript function to deep clone an object.", "deep clone an object"},
	{"Write a JavaScript function to debounce another function.", "debounce another function"},
	{"Write a JavaScript function to convert a string to title case.", "convert a string to title case"},
	{"Write a JavaScript function to find the longest word in a sentence.", "find the longest word in a sentence"},
	{"Write a JavaScript function to shuffle an array.", "shuffle an array"},
	{"Write a JavaScript function to compute the factorial of a number.", "compute the factorial of a number"},
}

// Pick returns one entry chosen uniformly at random.
func Pick() Entry {
	return Table[rand.IntN(len(Table))]
}

// ExplanationFor resolves the explanation paired with prompt, falling back
// to FallbackExplanation for prompts outside the table.
func ExplanationFor(prompt string) string {
	for _, e := range Table {
		if e.Prompt == prompt {
			return e.Explanation
		}
	}
	return FallbackExplanation
}
