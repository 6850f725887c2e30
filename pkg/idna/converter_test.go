package idna_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/idnakit/pkg/idna"
	"github.com/dmitrymomot/idnakit/pkg/uts46"
)

// recordingEngine captures the settings it was called with.
type recordingEngine struct {
	mu      sync.Mutex
	deny    uts46.ASCIIDenyList
	hyphens uts46.Hyphens
	dns     uts46.DNSLength
	calls   int

	asciiOut   string
	asciiErr   error
	unicodeOut string
	verdict    uts46.Verdict
}

func (e *recordingEngine) ToASCII(input []byte, deny uts46.ASCIIDenyList, hyphens uts46.Hyphens, dns uts46.DNSLength) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.deny, e.hyphens, e.dns = deny, hyphens, dns
	if e.asciiErr != nil {
		return nil, e.asciiErr
	}
	return []byte(e.asciiOut), nil
}

func (e *recordingEngine) ToUnicode(input []byte, deny uts46.ASCIIDenyList, hyphens uts46.Hyphens) (string, uts46.Verdict) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.deny, e.hyphens = deny, hyphens
	return e.unicodeOut, e.verdict
}

func TestConverter_ToASCII(t *testing.T) {
	t.Parallel()

	conv := idna.New()

	t.Run("encodes unicode labels", func(t *testing.T) {
		t.Parallel()

		got, err := conv.ToASCII("straße.de")
		require.NoError(t, err)
		assert.Equal(t, "xn--strae-oqa.de", got)
	})

	t.Run("ascii input passes through lowercased", func(t *testing.T) {
		t.Parallel()

		got, err := conv.ToASCII("Example.COM")
		require.NoError(t, err)
		assert.Equal(t, "example.com", got)
	})

	t.Run("deny list token changes the outcome", func(t *testing.T) {
		t.Parallel()

		got, err := conv.ToASCII("a_b.example")
		require.NoError(t, err)
		assert.Equal(t, "a_b.example", got)

		_, err = conv.ToASCII("a_b.example", idna.WithASCIIDenyList("std3"))
		require.ErrorIs(t, err, idna.ErrConstraintViolation)
		require.ErrorIs(t, err, uts46.ErrDeniedCodePoint)
	})

	t.Run("default dns length rejects trailing dot", func(t *testing.T) {
		t.Parallel()

		_, err := conv.ToASCII("example.com.")
		require.ErrorIs(t, err, idna.ErrConstraintViolation)
		require.ErrorIs(t, err, uts46.ErrDNSLength)

		got, err := conv.ToASCII("example.com.", idna.WithDNSLength("verify_allow_root_dot"))
		require.NoError(t, err)
		assert.Equal(t, "example.com.", got)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		_, err := conv.ToASCII("")
		require.ErrorIs(t, err, idna.ErrConstraintViolation)

		got, err := conv.ToASCII("", idna.WithDNSLength("ignore"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("hyphen policy", func(t *testing.T) {
		t.Parallel()

		got, err := conv.ToASCII("-abc.de")
		require.NoError(t, err)
		assert.Equal(t, "-abc.de", got)

		_, err = conv.ToASCII("-abc.de", idna.WithHyphens("check_first_last"))
		require.ErrorIs(t, err, uts46.ErrHyphenPosition)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		t.Parallel()

		_, err := conv.ToASCII("ex\xffample.com")
		require.ErrorIs(t, err, idna.ErrInputNotWellFormed)
	})
}

func TestConverter_ToUnicode(t *testing.T) {
	t.Parallel()

	conv := idna.New()

	t.Run("decodes punycode labels", func(t *testing.T) {
		t.Parallel()

		got, err := conv.ToUnicode("xn--strae-oqa.de")
		require.NoError(t, err)
		assert.Equal(t, "straße.de", got)
	})

	t.Run("ignores dns length", func(t *testing.T) {
		t.Parallel()

		got, err := conv.ToUnicode("xn--strae-oqa.de.", idna.WithDNSLength("verify"))
		require.NoError(t, err)
		assert.Equal(t, "straße.de.", got)
	})

	t.Run("invalid punycode fails", func(t *testing.T) {
		t.Parallel()

		_, err := conv.ToUnicode("xn--invalid!!.de")
		require.ErrorIs(t, err, idna.ErrConversion)
		require.ErrorIs(t, err, uts46.ErrInvalidLabel)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		t.Parallel()

		_, err := conv.ToUnicode("\xc3\x28.de")
		require.ErrorIs(t, err, idna.ErrInputNotWellFormed)
	})
}

func TestConverter_ToUnicodeLossy(t *testing.T) {
	t.Parallel()

	conv := idna.New()

	t.Run("clean input equals strict result", func(t *testing.T) {
		t.Parallel()

		strict, err := conv.ToUnicode("xn--d1acpjx3f.xn--p1ai")
		require.NoError(t, err)

		lossy, err := conv.ToUnicodeLossy("xn--d1acpjx3f.xn--p1ai")
		require.NoError(t, err)
		assert.Equal(t, strict, lossy)
		assert.Equal(t, "яндекс.рф", lossy)
	})

	t.Run("substitutes replacement character", func(t *testing.T) {
		t.Parallel()

		got, err := conv.ToUnicodeLossy("xn--invalid!!.de")
		require.NoError(t, err)
		assert.Contains(t, got, "�")
		assert.True(t, strings.HasSuffix(got, ".de"))
	})

	t.Run("denied code points", func(t *testing.T) {
		t.Parallel()

		got, err := conv.ToUnicodeLossy("a_b.de", idna.WithASCIIDenyList("std3"))
		require.NoError(t, err)
		assert.Equal(t, "a�b.de", got)
	})

	t.Run("still rejects invalid utf-8", func(t *testing.T) {
		t.Parallel()

		_, err := conv.ToUnicodeLossy("\xff")
		require.ErrorIs(t, err, idna.ErrInputNotWellFormed)
	})
}

func TestConverter_PunycodeDecodingToASCII(t *testing.T) {
	t.Parallel()

	conv := idna.New()
	noLength := idna.WithDNSLength("ignore")

	for _, input := range []string{"xn--abc-", "XN--ABC-", "xn--.de"} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			_, err := conv.ToASCII(input, noLength)
			require.ErrorIs(t, err, idna.ErrConstraintViolation)
			require.ErrorIs(t, err, uts46.ErrInvalidLabel)

			_, err = conv.ToUnicode(input)
			require.ErrorIs(t, err, idna.ErrConversion)

			got, err := conv.ToUnicodeLossy(input)
			require.NoError(t, err)
			assert.Contains(t, got, "�")
		})
	}
}

func TestConverter_BidiAcrossLabels(t *testing.T) {
	t.Parallel()

	conv := idna.New()

	_, err := conv.ToUnicode("1.xn--4db")
	require.ErrorIs(t, err, idna.ErrConversion)

	got, err := conv.ToUnicodeLossy("1.xn--4db")
	require.NoError(t, err)
	assert.Equal(t, "�.א", got)

	_, err = conv.ToASCII("1.xn--4db")
	require.ErrorIs(t, err, idna.ErrConstraintViolation)
}

func TestConverter_InvalidConfiguration(t *testing.T) {
	t.Parallel()

	conv := idna.New()

	ops := map[string]func(string, ...idna.Option) (string, error){
		"to_ascii":         conv.ToASCII,
		"to_unicode":       conv.ToUnicode,
		"to_unicode_lossy": conv.ToUnicodeLossy,
		"package ascii":    idna.ToASCII,
		"package unicode":  idna.ToUnicode,
		"package lossy":    idna.ToUnicodeLossy,
	}

	optionSets := map[string][]idna.Option{
		"deny list":           {idna.WithASCIIDenyList("URL")},
		"hyphens":             {idna.WithHyphens("")},
		"dns length":          {idna.WithDNSLength("strict")},
		"bad among good ones": {idna.WithASCIIDenyList("url"), idna.WithHyphens("check"), idna.WithDNSLength("nope")},
		"last supplied wins":  {idna.WithHyphens("check"), idna.WithHyphens("bogus")},
	}

	for opName, op := range ops {
		for setName, opts := range optionSets {
			t.Run(opName+"/"+setName, func(t *testing.T) {
				t.Parallel()

				// Inputs that would otherwise succeed or fail differently.
				for _, input := range []string{"example.com", "xn--invalid!!", "\xff"} {
					got, err := op(input, opts...)
					require.ErrorIs(t, err, idna.ErrInvalidConfiguration, "input %q", input)
					assert.Empty(t, got)
				}
			})
		}
	}
}

func TestConverter_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("omitted options use defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := idna.New().Resolve()
		require.NoError(t, err)
		assert.Equal(t, idna.DefaultConfig(), cfg)
	})

	t.Run("nil options are skipped", func(t *testing.T) {
		t.Parallel()

		cfg, err := idna.New().Resolve(nil, idna.WithHyphens("check"), nil)
		require.NoError(t, err)
		assert.Equal(t, uts46.HyphensCheck, cfg.Hyphens)
		assert.Equal(t, uts46.DenyURL, cfg.ASCIIDenyList)
	})

	t.Run("converter defaults", func(t *testing.T) {
		t.Parallel()

		conv := idna.New(idna.WithDefaults(uts46.DenySTD3, uts46.HyphensCheck, uts46.DNSLengthIgnore))
		cfg, err := conv.Resolve(idna.WithDNSLength("verify"))
		require.NoError(t, err)
		assert.Equal(t, idna.Config{
			ASCIIDenyList: uts46.DenySTD3,
			Hyphens:       uts46.HyphensCheck,
			DNSLength:     uts46.DNSLengthVerify,
		}, cfg)
		assert.Equal(t, uts46.DenySTD3, conv.Defaults().ASCIIDenyList)
	})

	t.Run("with config", func(t *testing.T) {
		t.Parallel()

		want := idna.Config{
			ASCIIDenyList: uts46.DenyEmpty,
			Hyphens:       uts46.HyphensCheckFirstLast,
			DNSLength:     uts46.DNSLengthVerifyAllowRootDot,
		}
		cfg, err := idna.New().Resolve(idna.WithConfig(want))
		require.NoError(t, err)
		assert.Equal(t, want, cfg)
	})
}

func TestConverter_WithEngine(t *testing.T) {
	t.Parallel()

	t.Run("passes resolved settings", func(t *testing.T) {
		t.Parallel()

		eng := &recordingEngine{asciiOut: "out"}
		conv := idna.New(idna.WithEngine(eng))

		got, err := conv.ToASCII("in", idna.WithASCIIDenyList("empty"), idna.WithHyphens("check_first_last"))
		require.NoError(t, err)
		assert.Equal(t, "out", got)
		assert.Equal(t, uts46.DenyEmpty, eng.deny)
		assert.Equal(t, uts46.HyphensCheckFirstLast, eng.hyphens)
		assert.Equal(t, uts46.DNSLengthVerify, eng.dns)
	})

	t.Run("engine not called on bad configuration", func(t *testing.T) {
		t.Parallel()

		eng := &recordingEngine{}
		conv := idna.New(idna.WithEngine(eng))

		_, err := conv.ToUnicode("in", idna.WithASCIIDenyList("bogus"))
		require.Error(t, err)
		assert.Zero(t, eng.calls)
	})

	t.Run("engine error is wrapped", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		conv := idna.New(idna.WithEngine(&recordingEngine{asciiErr: boom}))

		_, err := conv.ToASCII("in")
		require.ErrorIs(t, err, idna.ErrConstraintViolation)
		require.ErrorIs(t, err, boom)
	})

	t.Run("nil engine keeps the default", func(t *testing.T) {
		t.Parallel()

		conv := idna.New(idna.WithEngine(nil))
		got, err := conv.ToASCII("bücher.example")
		require.NoError(t, err)
		assert.Equal(t, "xn--bcher-kva.example", got)
	})
}

func TestDefault(t *testing.T) {
	t.Parallel()

	require.Same(t, idna.Default(), idna.Default())

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = idna.ToASCII("ουτοπία.δπθ.gr")
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, "xn--kxae4bafwg.xn--pxaix.gr", got)
	}

	got, err := idna.ToUnicode("xn--kxae4bafwg.xn--pxaix.gr")
	require.NoError(t, err)
	assert.Equal(t, "ουτοπία.δπθ.gr", got)
}
