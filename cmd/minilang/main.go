package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"minilang/interpreter-go/pkg/driver"
)

const cliToolVersion = "0.1.0-dev"

// errReported marks failures whose diagnostics were already printed.
var errReported = errors.New("failure reported")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	c := newCLI(os.Stdin, os.Stdout, os.Stderr)
	return c.execute(args)
}

// lineSource is the REPL's input; *readline.Instance satisfies it.
type lineSource interface {
	driver.LineReader
	Close() error
}

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	config     *driver.Config

	openLines func(cfg *driver.Config) (lineSource, error)
}

func newCLI(stdin io.Reader, stdout, stderr io.Writer) *cli {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	c.openLines = c.openReadline
	return c
}

func (c *cli) execute(args []string) int {
	root := c.rootCommand()
	// cobra reads os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(c.stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "minilang",
		Short:         "Tokenize, type check and evaluate minilang expressions",
		Version:       cliToolVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := driver.ResolveConfig(c.configPath, ".")
			if err != nil {
				return err
			}
			c.config = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runREPL()
		},
	}
	root.SetIn(c.stdin)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to minilang.yml (default: nearest one above the working directory)")

	root.AddCommand(
		c.replCommand(),
		c.evalCommand(),
		c.tokensCommand(),
		c.parseCommand(),
		c.checkCommand(),
		c.testCommand(),
	)
	return root
}

func (c *cli) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read expressions interactively and echo every stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runREPL()
		},
	}
}

func (c *cli) openReadline(cfg *driver.Config) (lineSource, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	return rl, nil
}

// runREPL reads expressions until end of input. Failures are printed and
// the loop continues, so the command itself only fails on I/O errors.
func (c *cli) runREPL() error {
	lines, err := c.openLines(c.config)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer lines.Close()

	reader := driver.NewReader(lines, c.config)
	session := driver.NewSession(c.config)
	for {
		source, err := reader.Next()
		if err != nil {
			var stageErr *driver.StageError
			switch {
			case errors.Is(err, io.EOF):
				return nil
			case errors.Is(err, readline.ErrInterrupt):
				continue
			case errors.As(err, &stageErr):
				driver.WriteError(c.stdout, err)
				continue
			default:
				return fmt.Errorf("repl: %w", err)
			}
		}
		res, err := session.Run(source)
		driver.WriteResult(c.stdout, res, c.config.Echo)
		if err != nil {
			driver.WriteError(c.stdout, err)
		}
	}
}
