package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \t\n ", nil},
		{"punctuation only", "!!! ??? ...", nil},
		{"lower-cases", "Hello WORLD", []string{"hello", "world"}},
		{"keeps duplicates and order", "b a b", []string{"b", "a", "b"}},
		{"underscore and digits", "my_var2 = x1+_y", []string{"my_var2", "x1", "_y"}},
		{"code", "function add(a, b) { return a + b; }",
			[]string{"function", "add", "a", "b", "return", "a", "b"}},
		{"non-ascii separates", "café→naïve", []string{"caf", "na", "ve"}},
		{"emoji only", "🙂🙃", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestTokenizeInvalidUTF8(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, []string{"ab", "cd"}, Tokenize("ab\xffcd"))
	})
}
