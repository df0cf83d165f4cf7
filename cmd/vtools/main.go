// Command vtools compares, plots and lists images and extracts numbers and
// filters strings from the command line.
//
// Usage:
//
//	vtools list [dir]
//	vtools info <image>...
//	vtools compare <image-a> <image-b> [--metric mse|psnr|ssim|all]
//	vtools iou <mask-a> <mask-b>
//	vtools plot <image>... -o figure.png
//	vtools numbers [text...] | --image <file>
//	vtools separator --from <sep> --to <sep> [text...]
//	vtools filter --must <s> [--exclude] [--prefix] [--suffix] [item...]
//
// Settings come from flags, VTOOLS_* environment variables and an optional
// --config file.
package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes one vtools invocation. Command errors are logged to stderr
// and returned.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	diag := log.NewWithOptions(stderr, log.Options{Prefix: "vtools"})

	a := newApp(diag)
	defer a.close()

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		diag.Error("command failed", "err", err)
		return err
	}
	return nil
}
