package idna

import (
	"context"
	"errors"
	"fmt"
)

// ErrHealthcheckFailed is returned when the converter self-check produces
// an unexpected result.
var ErrHealthcheckFailed = errors.New("idna: healthcheck failed")

const (
	sampleUnicode = "straße.de"
	sampleASCII   = "xn--strae-oqa.de"
)

// Healthcheck returns a closure that round-trips a known name through the
// converter. Compatible with health.CheckFunc.
func Healthcheck(c *Converter) func(context.Context) error {
	return func(ctx context.Context) error {
		if c == nil {
			return ErrHealthcheckFailed
		}
		if err := ctx.Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}

		ascii, err := c.ToASCII(sampleUnicode, WithConfig(DefaultConfig()))
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if ascii != sampleASCII {
			return fmt.Errorf("%w: ToASCII(%q) = %q", ErrHealthcheckFailed, sampleUnicode, ascii)
		}

		unicode, err := c.ToUnicode(ascii, WithConfig(DefaultConfig()))
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if unicode != sampleUnicode {
			return fmt.Errorf("%w: ToUnicode(%q) = %q", ErrHealthcheckFailed, ascii, unicode)
		}
		return nil
	}
}
