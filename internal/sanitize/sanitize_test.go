package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  plain text  ", want: "plain text"},
		{in: "<script>alert(1)</script>nice clip", want: "nice clip"},
		{in: "<b>bold</b> & <i>brave</i>", want: "bold & brave"},
		{in: "Tom's \"quote\"", want: "Tom's \"quote\""},
		{in: "<img src=x onerror=alert(1)>", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Text(tt.in), tt.in)
	}
}

func TestLine(t *testing.T) {
	assert.Equal(t, "Jane Doe", Line("  Jane \n\t <em>Doe</em> "))
}
