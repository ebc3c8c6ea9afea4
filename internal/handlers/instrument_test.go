package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchAllowed(t *testing.T) {
	cases := map[string]bool{
		"guitar":     true,
		"Les_Paul":   true,
		"ünïcödé":    true,
		"o'reilly":   true,
		"semi;colon": true,
		"":           false,
		"a%b":        false,
		"%":          false,
		"a b":        false,
		"a\tb":       false,
		"a\nb":       false,
		"a\u00a0b":   false,
		"trailing ":  false,
	}
	for query, want := range cases {
		assert.Equal(t, want, searchAllowed(query), "query %q", query)
	}
}
