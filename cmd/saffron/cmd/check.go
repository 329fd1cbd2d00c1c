package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/henry232323/saffron-lang/internal/checker"
	"github.com/henry232323/saffron-lang/internal/config"
	"github.com/henry232323/saffron-lang/internal/lexer"
	"github.com/henry232323/saffron-lang/internal/modules"
	"github.com/henry232323/saffron-lang/internal/parser"
	"github.com/henry232323/saffron-lang/internal/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse and type-check a Saffron file",
	Long: `Run the front end over a source file: lex, parse, and
type-check. Diagnostics go to stderr; the exit status is non-zero when
any error was found.

Examples:
  saffron check main.saf
  saffron check --verbose src/worker.saf`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	path := args[0]
	ctx, err := runFrontend(path)
	if err != nil {
		return err
	}

	if len(ctx.Errors) > 0 {
		printDiagnostics(ctx.Errors)
		return fmt.Errorf("%s: %d error(s)", path, len(ctx.Errors))
	}

	if verbose {
		fmt.Printf("%s: ok (%d statements, %d typed expressions)\n",
			path, len(ctx.AstRoot.Statements), len(ctx.Types))
	}
	return nil
}

// runFrontend runs lexer, parser and checker over a file, honoring the
// project configuration next to it.
func runFrontend(path string) (*pipeline.PipelineContext, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	project, err := config.LoadProject(dir)
	if err != nil {
		return nil, err
	}
	searchPaths := make([]string, 0, len(project.ModulePaths))
	for _, p := range project.ModulePaths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		searchPaths = append(searchPaths, p)
	}

	ctx := &pipeline.PipelineContext{FilePath: path, SourceCode: string(source)}
	pipe := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&checker.CheckerProcessor{
			Registry:    modules.NewRegistry(),
			SearchPaths: searchPaths,
		},
	)
	return pipe.Run(ctx), nil
}
