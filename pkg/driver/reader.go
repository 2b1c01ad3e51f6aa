package driver

import (
	"strings"

	"minilang/interpreter-go/pkg/lexer"
)

// LineReader supplies input one line at a time. *readline.Instance
// satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Reader gathers lines until the brackets they open are closed.
type Reader struct {
	lines        LineReader
	prompt       string
	continuation string
	buffer       []string
}

// NewReader wraps lines, using the prompts from cfg.
func NewReader(lines LineReader, cfg *Config) *Reader {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Reader{lines: lines, prompt: cfg.Prompt, continuation: cfg.ContinuationPrompt}
}

// Next returns the next complete expression source. Blank lines are
// skipped. A line that fails to tokenize discards everything gathered so far
// and is reported as a tokenize StageError. Errors from the underlying
// reader, including io.EOF, are returned as is.
func (r *Reader) Next() (string, error) {
	r.buffer = r.buffer[:0]
	for {
		if len(r.buffer) == 0 {
			r.lines.SetPrompt(r.prompt)
		} else {
			r.lines.SetPrompt(r.continuation)
		}
		line, err := r.lines.Readline()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.buffer = append(r.buffer, line)
		source := strings.Join(r.buffer, "\n")
		tokens, err := lexer.Tokenize(source)
		if err != nil {
			r.buffer = r.buffer[:0]
			return "", &StageError{Stage: StageTokenize, Err: err}
		}
		if Nesting(tokens) <= 0 {
			r.buffer = r.buffer[:0]
			return source, nil
		}
	}
}

// Pending reports whether a partial expression is buffered, which is the
// case after the underlying reader failed mid-expression.
func (r *Reader) Pending() bool { return len(r.buffer) > 0 }
