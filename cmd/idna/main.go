// Command idna converts domain names between their Unicode and ASCII forms.
//
//	idna to-ascii straße.de            # xn--strae-oqa.de
//	idna to-unicode --hyphens check xn--strae-oqa.de
//	cat names.txt | idna to-unicode-lossy
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
