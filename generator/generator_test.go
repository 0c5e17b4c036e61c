package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"snippet-bot/generator"
)

func TestCleanSnippet(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain code",
			in:   "function reverse(s){return s.split('').reverse().join('')}",
			want: "function reverse(s){return s.split('').reverse().join('')}",
		},
		{
			name: "surrounding whitespace",
			in:   "\n\n  function f(){}  \n",
			want: "function f(){}",
		},
		{
			name: "fenced with language tag",
			in:   "```javascript\nfunction f(){}\n```",
			want: "function f(){}",
		},
		{
			name: "fenced without language tag",
			in:   "```\nfunction f(){}\n```",
			want: "function f(){}",
		},
		{
			name: "single line fence",
			in:   "```function f(){}```",
			want: "function f(){}",
		},
		{
			name: "empty",
			in:   "   \n ",
			want: "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, generator.CleanSnippet(testCase.in))
		})
	}
}
