package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripUniqueSuffix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "two segment suffix",
			in:   "photo-abc-123.jpg",
			want: "photo",
		},
		{
			name: "hyphenated display name",
			in:   "my-holiday-photo-abc-123.jpg",
			want: "my-holiday-photo",
		},
		{
			name: "no hyphens passes through",
			in:   "doc.txt",
			want: "doc.txt",
		},
		{
			name: "single hyphen passes through",
			in:   "doc-1.txt",
			want: "doc-1.txt",
		},
		{
			name: "exactly three segments",
			in:   "a-b-c",
			want: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripUniqueSuffix(tt.in))
		})
	}
}

func TestKeyGenerator_Key(t *testing.T) {
	g := KeyGenerator{
		now:    func() time.Time { return time.Date(2025, 3, 9, 10, 30, 0, 0, time.UTC) },
		random: func() int { return 123456 },
	}

	assert.Equal(t, "photo-20250309123456", g.Key("photo-abc-123.jpg"))
	assert.Equal(t, "doc.txt-20250309123456", g.Key("doc.txt"))
}

func TestKeyGenerator_RandomRange(t *testing.T) {
	g := NewKeyGenerator()

	for range 1000 {
		n := g.random()
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}
