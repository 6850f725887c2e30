package idna_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/idnakit/pkg/idna"
)

func TestIsPunycode(t *testing.T) {
	t.Parallel()

	t.Run("short input is never punycode", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"", "x", "xn", "xn-", "XN-"} {
			require.False(t, idna.IsPunycode([]byte(in)), "input %q", in)
		}
		require.False(t, idna.IsPunycode(nil))
	})

	t.Run("prefix in any letter case", func(t *testing.T) {
		t.Parallel()

		for _, prefix := range []string{"xn--", "Xn--", "xN--", "XN--"} {
			require.True(t, idna.IsPunycode([]byte(prefix)), "prefix %q", prefix)
			require.True(t, idna.IsPunycode([]byte(prefix+"abc")), "prefix %q", prefix)
		}
	})

	t.Run("over-matches on the remainder", func(t *testing.T) {
		t.Parallel()

		require.True(t, idna.IsPunycode([]byte("xn--invalid!!")))
		require.True(t, idna.IsPunycode([]byte("xn--ü")))
		require.True(t, idna.IsPunycode([]byte{'x', 'n', '-', '-', 0xFF, 0xFE}))
	})

	t.Run("rejects other prefixes", func(t *testing.T) {
		t.Parallel()

		tests := []string{
			"xy--abc",
			"yn--abc",
			"xn-_abc",
			"xn_-abc",
			"xn-abc",
			"xn\r\rabc", // hyphen with the case bit cleared
			"Xn-\x0dabc",
			"xñ--",
			"-xn--",
			"example.com",
		}
		for _, in := range tests {
			require.False(t, idna.IsPunycode([]byte(in)), "input %q", in)
		}
	})

	t.Run("case bit only folds letters", func(t *testing.T) {
		t.Parallel()

		// 'x'^0x20 and 'n'^0x20 are the only foldable bytes.
		for b := 0; b < 256; b++ {
			in := []byte{byte(b), 'n', '-', '-'}
			want := b == 'x' || b == 'X'
			require.Equal(t, want, idna.IsPunycode(in), "first byte %#x", b)

			in = []byte{'x', byte(b), '-', '-'}
			want = b == 'n' || b == 'N'
			require.Equal(t, want, idna.IsPunycode(in), "second byte %#x", b)

			in = []byte{'x', 'n', byte(b), '-'}
			require.Equal(t, b == '-', idna.IsPunycode(in), "third byte %#x", b)

			in = []byte{'x', 'n', '-', byte(b)}
			require.Equal(t, b == '-', idna.IsPunycode(in), "fourth byte %#x", b)
		}
	})
}

func TestIsASCII(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{in: "", want: true},
		{in: "example.com", want: true},
		{in: "xn--strae-oqa.de", want: true},
		{in: "\x00\x7f", want: true},
		{in: "straße.de", want: false},
		{in: "a\x80", want: false},
		{in: "\xff", want: false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, idna.IsASCII(tt.in), "input %q", tt.in)
	}
}

func BenchmarkIsPunycode(b *testing.B) {
	in := []byte("xn--strae-oqa")
	for b.Loop() {
		_ = idna.IsPunycode(in)
	}
}
