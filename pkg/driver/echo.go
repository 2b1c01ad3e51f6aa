package driver

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"minilang/interpreter-go/pkg/runtime"
)

// FormatTokens renders tokens as [t1, t2, ...].
func FormatTokens(res *Result) string {
	parts := make([]string, len(res.Tokens))
	for i, tok := range res.Tokens {
		parts[i] = tok.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// WriteResult prints the stages of res selected by echo, followed by the
// value when evaluation finished.
func WriteResult(w io.Writer, res *Result, echo EchoConfig) {
	if res == nil {
		return
	}
	if echo.Tokens && res.Tokens != nil {
		fmt.Fprintf(w, "tokens: %s\n", FormatTokens(res))
	}
	if echo.AST && res.AST != nil {
		fmt.Fprintf(w, "ast   : %s\n", res.AST)
	}
	if echo.Type && res.Type != nil {
		fmt.Fprintf(w, "type  : %s\n", res.Type)
	}
	if res.Value != nil {
		fmt.Fprintf(w, "result: %s\n", runtime.Format(res.Value))
	}
}

// WriteError prints err under its stage label.
func WriteError(w io.Writer, err error) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		fmt.Fprintf(w, "%s: %v\n", stageErr.Stage.Label(), stageErr.Err)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
