package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/henry232323/saffron-lang/internal/config"
	"github.com/henry232323/saffron-lang/internal/diagnostics"
)

var (
	// GitCommit and BuildDate are set by build flags.
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "saffron",
	Short: "Saffron language toolchain",
	Long: `saffron is the front end of the Saffron language: a
single-pass parser, a structural type checker with generic inference,
and the cooperative task runtime underneath the VM.

Programs with parse or type errors never reach execution.`,
	Version: config.Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// printDiagnostics writes the collected errors to stderr, in red when
// stderr is a terminal.
func printDiagnostics(errs []*diagnostics.DiagnosticError) {
	colored := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	for _, err := range errs {
		if colored {
			fmt.Fprintf(os.Stderr, "\x1b[31m%s\x1b[0m\n", err.Error())
		} else {
			fmt.Fprintln(os.Stderr, err.Error())
		}
	}
}
