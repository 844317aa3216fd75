// Command htmledit edits HTML documents from the command line:
// selector-driven removal, insertion and replacement, whitespace
// trimming, JavaScript visitors, and YAML-described edit plans.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chrisuehlinger/htmledit/dom"
	"github.com/chrisuehlinger/htmledit/html"
	"github.com/chrisuehlinger/htmledit/script"
	"github.com/chrisuehlinger/htmledit/selector"
)

var (
	verbose     bool
	outputPath  string
	selectorArg string
	htmlArg     string
	jsArg       string
	planPath    string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "htmledit [file]",
	Short: "htmledit - selector-driven HTML editing",
	Long: `htmledit parses an HTML document, applies selector-driven edits to the
node tree, and serializes the result.

Documents are read from the file argument, or from stdin when no file
is given. The edited document is written to stdout, or to the path
given with -o.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var trimCmd = &cobra.Command{
	Use:   "trim [file]",
	Short: "Remove comments and whitespace-only text nodes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editDocument(args, func(doc *dom.NodeList) error {
			doc.Trim()
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove [file]",
	Short: "Remove every element matching the selector",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := selector.Parse(selectorArg)
		if err != nil {
			return err
		}
		return editDocument(args, func(doc *dom.NodeList) error {
			doc.RemoveBy(sel)
			return nil
		})
	},
}

var insertCmd = &cobra.Command{
	Use:   "insert [file]",
	Short: "Append an HTML fragment to every element matching the selector",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := selector.Parse(selectorArg)
		if err != nil {
			return err
		}
		fragment, err := html.ParseFragment(htmlArg)
		if err != nil {
			return fmt.Errorf("failed to parse fragment: %w", err)
		}
		return editDocument(args, func(doc *dom.NodeList) error {
			for _, n := range fragment {
				doc.InsertTo(sel, n)
			}
			return nil
		})
	},
}

var replaceCmd = &cobra.Command{
	Use:   "replace [file]",
	Short: "Replace every element matching the selector via a JS transform",
	Long: `Replace every element matching the selector with the result of a
JavaScript transform, e.g.:

  htmledit replace -s p --js '(el) => "<p>" + el.text() + "!</p>"' page.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := selector.Parse(selectorArg)
		if err != nil {
			return err
		}
		transform, err := script.New().Transform(jsArg)
		if err != nil {
			return err
		}
		return editDocument(args, func(doc *dom.NodeList) error {
			_, err := doc.ReplaceWith(sel, transform)
			return err
		})
	},
}

var execCmd = &cobra.Command{
	Use:   "exec [file]",
	Short: "Run a JS visitor on every element matching the selector",
	Long: `Run a JavaScript visitor on every element matching the selector, e.g.:

  htmledit exec -s input --js '(el) => el.setAttribute("class", "input")' page.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := selector.Parse(selectorArg)
		if err != nil {
			return err
		}
		visit, err := script.New().Visitor(jsArg)
		if err != nil {
			return err
		}
		return editDocument(args, func(doc *dom.NodeList) error {
			doc.ExecuteFor(sel, visit)
			return nil
		})
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply [file]",
	Short: "Apply an ordered YAML edit plan",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := LoadPlan(planPath)
		if err != nil {
			return err
		}
		return editDocument(args, func(doc *dom.NodeList) error {
			return plan.Apply(doc, logger)
		})
	},
}

// editDocument reads the input document, applies edit to it, and
// writes the rendered result.
func editDocument(args []string, edit func(*dom.NodeList) error) error {
	content, err := readInput(args)
	if err != nil {
		return err
	}
	doc, err := html.Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	logger.Debug("parsed document", zap.Int("nodes", len(doc)))
	if err := edit(&doc); err != nil {
		return err
	}
	return writeOutput(html.Render(doc))
}

func readInput(args []string) (string, error) {
	if len(args) == 0 {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), nil
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(content), nil
}

func writeOutput(content string) error {
	if outputPath == "" {
		_, err := fmt.Print(content)
		return err
	}
	return os.WriteFile(outputPath, []byte(content), 0o644)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "write the result to a file instead of stdout")

	for _, cmd := range []*cobra.Command{removeCmd, insertCmd, replaceCmd, execCmd} {
		cmd.Flags().StringVarP(&selectorArg, "selector", "s", "", "selector to match elements against")
		_ = cmd.MarkFlagRequired("selector")
	}
	insertCmd.Flags().StringVar(&htmlArg, "html", "", "HTML fragment to insert")
	_ = insertCmd.MarkFlagRequired("html")
	for _, cmd := range []*cobra.Command{replaceCmd, execCmd} {
		cmd.Flags().StringVar(&jsArg, "js", "", "JavaScript function to run")
		_ = cmd.MarkFlagRequired("js")
	}
	applyCmd.Flags().StringVarP(&planPath, "plan", "p", "", "YAML edit plan")
	_ = applyCmd.MarkFlagRequired("plan")

	rootCmd.AddCommand(trimCmd, removeCmd, insertCmd, replaceCmd, execCmd, applyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
