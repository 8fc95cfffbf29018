package cmdutils

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// ExitWithErr prints err in red and exits with status 1.
func ExitWithErr(err error) {
	fmt.Fprintln(color.Error, color.RedString("failed with error: %v", err.Error()))
	os.Exit(1)
}

func ExitWithErrs(errs []error) {
	if len(errs) == 0 {
		return
	}
	if len(errs) == 1 {
		ExitWithErr(errs[0])
		return
	}
	for _, err := range errs {
		fmt.Fprintln(color.Error, color.RedString("%v", err))
	}
	fmt.Fprintln(color.Error, color.RedString("failed"))
	os.Exit(1)
}
