////////////////////////////////////////////////////////////////////////////////
// Okinoko Flowvote: split a funding stream across recipients and vote in batches
// created by tibfox 2025-10-06
////////////////////////////////////////////////////////////////////////////////

package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/untillpro/goutils/cobrau"
)

//go:embed version
var version string

func main() {
	if err := execRootCmd(os.Args, version); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func execRootCmd(args []string, ver string) error {
	return cobrau.ExecCommandAndCatchInterrupt(newRootCmd(args, ver))
}
