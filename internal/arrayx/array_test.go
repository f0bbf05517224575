package arrayx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "unquoted and quoted elements",
			raw:  `{skill one,"skill two"}`,
			want: []string{"skill one", "skill two"},
		},
		{
			name: "plain elements",
			raw:  `{gardening,cooking}`,
			want: []string{"gardening", "cooking"},
		},
		{
			name: "whitespace around elements",
			raw:  `{ gardening ,  "dog walking" }`,
			want: []string{"gardening", "dog walking"},
		},
		{
			name: "empty braces",
			raw:  `{}`,
			want: []string{},
		},
		{
			name: "empty string",
			raw:  ``,
			want: []string{},
		},
		{
			name: "whitespace only",
			raw:  `  `,
			want: []string{},
		},
		{
			name: "single element",
			raw:  `{"tutoring"}`,
			want: []string{"tutoring"},
		},
		{
			name: "missing braces tolerated",
			raw:  `a,b`,
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.raw))
		})
	}
}

func TestDecode_NeverNil(t *testing.T) {
	assert.NotNil(t, Decode(""))
	assert.NotNil(t, Decode("{}"))
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		elems []string
		want  string
	}{
		{"nil", nil, "{}"},
		{"empty", []string{}, "{}"},
		{"plain", []string{"gardening", "cooking"}, `{gardening,cooking}`},
		{"with space", []string{"dog walking"}, `{"dog walking"}`},
		{"with quote", []string{`say "hi"`}, `{"say \"hi\""}`},
		{"empty element", []string{""}, `{""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.elems))
		})
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := []string{"skill one", "skill two", "plain"}
	assert.Equal(t, in, Decode(Encode(in)))
}
