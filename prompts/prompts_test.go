package prompts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"snippet-bot/prompts"
)

func TestExplanationFor(t *testing.T) {
	for _, entry := range prompts.Table {
		assert.Equal(t, entry.Explanation, prompts.ExplanationFor(entry.Prompt))
	}

	assert.Equal(t, prompts.FallbackExplanation, prompts.ExplanationFor("Write a Haskell function to transpose a matrix."))
	assert.Equal(t, prompts.FallbackExplanation, prompts.ExplanationFor(""))
}

func TestPickCoversEveryEntry(t *testing.T) {
	seen := make(map[string]int, len(prompts.Table))
	for i := 0; i < 10000; i++ {
		seen[prompts.Pick().Prompt]++
	}

	assert.Len(t, seen, len(prompts.Table))
	for _, entry := range prompts.Table {
		assert.Greaterf(t, seen[entry.Prompt], 0, "entry never drawn: %s", entry.Prompt)
	}
}

func TestTableHasNoDuplicatePrompts(t *testing.T) {
	unique := make(map[string]struct{}, len(prompts.Table))
	for _, entry := range prompts.Table {
		assert.NotEmpty(t, entry.Prompt)
		assert.NotEmpty(t, entry.Explanation)
		unique[entry.Prompt] = struct{}{}
	}
	assert.Len(t, unique, len(prompts.Table))
}
