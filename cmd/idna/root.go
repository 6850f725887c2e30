package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/idnakit/pkg/idna"
)

// ErrFailed reports that at least one input could not be converted.
var ErrFailed = errors.New("idna: one or more inputs failed")

type tokenFlags struct {
	asciiDenyList string
	hyphens       string
	dnsLength     string
}

func (f *tokenFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.asciiDenyList, "ascii-deny-list", "url", "ASCII deny list: empty, std3 or url")
	cmd.Flags().StringVar(&f.hyphens, "hyphens", "allow", "hyphen policy: allow, check_first_last or check")
	cmd.Flags().StringVar(&f.dnsLength, "dns-length", "verify", "DNS length policy: ignore, verify_allow_root_dot or verify (validated but unused by Unicode conversions)")
}

// options returns options only for the flags set on the command line, so
// an explicit empty value is still validated.
func (f *tokenFlags) options(cmd *cobra.Command) []idna.Option {
	var opts []idna.Option
	if cmd.Flags().Changed("ascii-deny-list") {
		opts = append(opts, idna.WithASCIIDenyList(f.asciiDenyList))
	}
	if cmd.Flags().Changed("hyphens") {
		opts = append(opts, idna.WithHyphens(f.hyphens))
	}
	if cmd.Flags().Changed("dns-length") {
		opts = append(opts, idna.WithDNSLength(f.dnsLength))
	}
	return opts
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "idna",
		Short:         "Convert domain names between Unicode and ASCII forms",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)

	root.AddCommand(
		predicateCmd("is-ascii", "Report whether each name is pure ASCII", idna.IsASCII),
		predicateCmd("is-punycode", "Report whether each name starts with an xn-- prefix", func(s string) bool {
			return idna.IsPunycode([]byte(s))
		}),
		convertCmd("to-ascii", "Convert names to their ASCII form", idna.ToASCII),
		convertCmd("to-unicode", "Convert names to their Unicode form", idna.ToUnicode),
		convertCmd("to-unicode-lossy", "Convert names to Unicode, marking errors with U+FFFD", idna.ToUnicodeLossy),
	)
	return root
}

func predicateCmd(use, short string, fn func(string) bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [name...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return eachInput(cmd, args, func(name string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(fn(name)))
				return err
			})
		},
	}
}

func convertCmd(use, short string, fn func(string, ...idna.Option) (string, error)) *cobra.Command {
	var flags tokenFlags

	cmd := &cobra.Command{
		Use:   use + " [name...]",
		Short: short,
		Long:  short + ".\n\nNames are read from the arguments, or one per line from stdin when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd)

			// A bad token fails every input the same way.
			if _, err := idna.New().Resolve(opts...); err != nil {
				return err
			}

			failed := false
			err := eachInput(cmd, args, func(name string) error {
				res, err := fn(name, opts...)
				if err != nil {
					failed = true
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", strconv.Quote(name), err)
					return nil
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), res)
				return err
			})
			if err != nil {
				return err
			}
			if failed {
				return ErrFailed
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// eachInput calls fn for every argument, or for every stdin line when there
// are no arguments.
func eachInput(cmd *cobra.Command, args []string, fn func(string) error) error {
	if len(args) > 0 {
		for _, a := range args {
			if err := fn(a); err != nil {
				return err
			}
		}
		return nil
	}

	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		if err := fn(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}
