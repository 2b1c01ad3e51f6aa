package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"minilang/interpreter-go/pkg/driver"
	"minilang/interpreter-go/pkg/fixtures"
)

// input is one source text and the name it is reported under.
type input struct {
	name   string
	source string
}

// readInputs treats args as expressions when expression is set and as file
// paths otherwise. With no args the source is read from stdin.
func (c *cli) readInputs(args []string, expression bool) ([]input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []input{{name: "<stdin>", source: string(data)}}, nil
	}
	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		if expression {
			inputs = append(inputs, input{name: "<expression>", source: arg})
			continue
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", arg, err)
		}
		inputs = append(inputs, input{name: arg, source: string(data)})
	}
	return inputs, nil
}

// stageCommand runs each input through step and hands successful results to
// show. A failing input is reported and the remaining inputs still run.
func (c *cli) stageCommand(args []string, expression bool, step func(*driver.Session, string) (*driver.Result, error), show func(*driver.Result) error) error {
	inputs, err := c.readInputs(args, expression)
	if err != nil {
		return err
	}
	failed := false
	for _, in := range inputs {
		res, err := step(driver.NewSession(c.config), in.source)
		if err != nil {
			if len(inputs) > 1 {
				fmt.Fprintf(c.stderr, "%s: ", in.name)
			}
			driver.WriteError(c.stderr, err)
			if res != nil && res.AST != nil && len(res.FreeVariables) > 0 {
				fmt.Fprintf(c.stderr, "free variables: %s\n", strings.Join(res.FreeVariables, ", "))
			}
			failed = true
			continue
		}
		if err := show(res); err != nil {
			return err
		}
	}
	if failed {
		return errReported
	}
	return nil
}

func (c *cli) evalCommand() *cobra.Command {
	var expression bool
	cmd := &cobra.Command{
		Use:   "eval [FILE|EXPR]...",
		Short: "Evaluate expressions and print their type and value",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.stageCommand(args, expression, (*driver.Session).Run, func(res *driver.Result) error {
				driver.WriteResult(c.stdout, res, driver.EchoConfig{Type: true})
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&expression, "expression", "e", false, "interpret arguments as expressions instead of file paths")
	return cmd
}

func (c *cli) tokensCommand() *cobra.Command {
	var expression bool
	cmd := &cobra.Command{
		Use:   "tokens [FILE|EXPR]...",
		Short: "Print the token sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.stageCommand(args, expression, (*driver.Session).Tokenize, func(res *driver.Result) error {
				fmt.Fprintln(c.stdout, driver.FormatTokens(res))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&expression, "expression", "e", false, "interpret arguments as expressions instead of file paths")
	return cmd
}

func (c *cli) parseCommand() *cobra.Command {
	var expression, asJSON bool
	cmd := &cobra.Command{
		Use:   "parse [FILE|EXPR]...",
		Short: "Print the syntax tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.stageCommand(args, expression, (*driver.Session).Parse, func(res *driver.Result) error {
				if !asJSON {
					fmt.Fprintln(c.stdout, res.AST)
					return nil
				}
				data, err := json.MarshalIndent(res.AST, "", "  ")
				if err != nil {
					return fmt.Errorf("encode syntax tree: %w", err)
				}
				fmt.Fprintln(c.stdout, string(data))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&expression, "expression", "e", false, "interpret arguments as expressions instead of file paths")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON")
	return cmd
}

func (c *cli) checkCommand() *cobra.Command {
	var expression bool
	cmd := &cobra.Command{
		Use:   "check [FILE|EXPR]...",
		Short: "Type check expressions without evaluating them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.stageCommand(args, expression, (*driver.Session).Check, func(res *driver.Result) error {
				fmt.Fprintln(c.stdout, res.Type)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&expression, "expression", "e", false, "interpret arguments as expressions instead of file paths")
	return cmd
}

func (c *cli) testCommand() *cobra.Command {
	var rev, repo string
	cmd := &cobra.Command{
		Use:   "test SUITE...",
		Short: "Run YAML scenario suites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, path := range args {
				suite, err := c.loadSuite(path, rev, repo)
				if err != nil {
					return err
				}
				report := fixtures.Run(suite, c.config)
				for _, o := range report.Failures() {
					fmt.Fprintf(c.stdout, "FAIL %s/%s: %s\n", report.Suite, o.Scenario, o.Message)
				}
				fmt.Fprintln(c.stdout, report.Summary())
				if !report.Passed() {
					failed = true
				}
			}
			if failed {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rev, "rev", "", "read suites as committed at this git revision")
	cmd.Flags().StringVar(&repo, "repo", ".", "git repository used with --rev")
	return cmd
}

func (c *cli) loadSuite(path, rev, repo string) (*fixtures.Suite, error) {
	if rev == "" {
		return fixtures.LoadSuite(path)
	}
	return fixtures.LoadSuiteAtRevision(repo, rev, path)
}
