package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/henry232323/saffron-lang/internal/lexer"
	"github.com/henry232323/saffron-lang/internal/parser"
	"github.com/henry232323/saffron-lang/internal/pipeline"
	"github.com/henry232323/saffron-lang/internal/prettyprinter"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Saffron file and print the canonical rendering",
	Long: `Parse a source file and render the resulting tree back to
canonical source. Useful for inspecting how a program was understood.

Examples:
  saffron parse main.saf`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	ctx := &pipeline.PipelineContext{FilePath: path, SourceCode: string(source)}
	pipe := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{})
	ctx = pipe.Run(ctx)

	if len(ctx.Errors) > 0 {
		printDiagnostics(ctx.Errors)
		return fmt.Errorf("%s: %d error(s)", path, len(ctx.Errors))
	}

	printer := prettyprinter.NewCodePrinter()
	fmt.Print(printer.Print(ctx.AstRoot))
	return nil
}
