package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeUserHTML(t *testing.T) {
	t.Run("Strips script tags", func(t *testing.T) {
		out := SanitizeUserHTML(`Hello <script>alert("xss")</script>world`)
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "Hello")
	})

	t.Run("Keeps basic formatting", func(t *testing.T) {
		out := SanitizeUserHTML("<p>My printer is <strong>on fire</strong></p>")
		assert.Contains(t, out, "<strong>on fire</strong>")
	})

	t.Run("Strips event handlers", func(t *testing.T) {
		out := SanitizeUserHTML(`<a href="https://example.com" onclick="steal()">link</a>`)
		assert.NotContains(t, out, "onclick")
	})

	t.Run("Trims surrounding whitespace", func(t *testing.T) {
		assert.Equal(t, "plain text", SanitizeUserHTML("  plain text \n"))
	})
}
