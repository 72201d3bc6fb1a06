package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rileyhilliard/healthdigest/internal/checks"
	"github.com/rileyhilliard/healthdigest/internal/config"
	"github.com/rileyhilliard/healthdigest/internal/errors"
	"github.com/rileyhilliard/healthdigest/internal/summary"
	"github.com/rileyhilliard/healthdigest/internal/util"
	"golang.org/x/term"
)

// stdinIsTerminal reports whether stdin is interactive. Tests replace it.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// resolveKind picks the record kind named by the --unit flag, or the
// configured unit when the flag is empty.
func resolveKind(unit string, cfg *config.Config) (checks.Kind, error) {
	if unit == "" {
		unit = cfg.Unit
	}
	kind, err := checks.Lookup(unit)
	if err != nil {
		return checks.Kind{}, errors.WrapWithCode(err, errors.ErrInput,
			fmt.Sprintf("Unknown unit '%s'", unit),
			"Use --unit with one of: "+util.JoinOrNone(checks.Names()))
	}
	return kind, nil
}

// openInput opens the records file named by args, or stdin when there is
// none (or it is "-"). An interactive stdin is refused.
func openInput(args []string, stdin io.Reader) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		if stdinIsTerminal() {
			return nil, "", errors.New(errors.ErrInput,
				"No records to read",
				"Pass a records file, or pipe records on stdin.")
		}
		return io.NopCloser(stdin), "stdin", nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", errors.WrapWithCode(err, errors.ErrInput,
			"Cannot open records file: "+args[0],
			"Check the path is correct.")
	}
	return f, args[0], nil
}

// readResults reads every record of kind from the input named by args.
func readResults(kind checks.Kind, args []string, stdin io.Reader) ([]checks.Result, error) {
	in, name, err := openInput(args, stdin)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	results, err := kind.ReadAll(in)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInput,
			"Failed to read records from "+name,
			fmt.Sprintf("Each line must be a %s record: %s", kind.Name, kind.Header()))
	}
	if len(results) == 0 {
		return nil, errors.New(errors.ErrInput,
			"No records found in "+name,
			"Check the file holds "+kind.Name+" records, or pick another --unit.")
	}
	return results, nil
}

func toRows(results []checks.Result) []summary.Row {
	rows := make([]summary.Row, len(results))
	for i, r := range results {
		rows[i] = r
	}
	return rows
}
