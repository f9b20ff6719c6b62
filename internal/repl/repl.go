package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/loamdb/loam/internal/catalog"
	"github.com/loamdb/loam/internal/engine"
)

// Start runs the interactive loop until EOF or an exit command. It
// only ever calls Execute and prints what comes back.
func Start(eng *engine.Engine, cat *catalog.Catalog) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("loam interactive shell")
	fmt.Println("Type 'exit' or '\\q' to quit, 'ls' to list tables.")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}
		if line == "exit" || line == "\\q" {
			return
		}
		if line == "ls" || line == "list" {
			names := cat.Names()
			if len(names) == 0 {
				fmt.Println("no tables")
				continue
			}
			for _, name := range names {
				fmt.Printf("  - %s\n", name)
			}
			continue
		}

		result, err := eng.Execute(line)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		PrintResult(os.Stdout, result)
	}
}

// PrintResult renders a result as an aligned table, or just the
// summary message for non-SELECT statements.
func PrintResult(w io.Writer, res *engine.Result) {
	if len(res.Columns) == 0 {
		if res.Message != "" {
			fmt.Fprintln(w, res.Message)
		}
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, col := range res.Columns {
		fmt.Fprint(tw, col)
		if i < len(res.Columns)-1 {
			fmt.Fprint(tw, "\t")
		}
	}
	fmt.Fprintln(tw)

	for i := range res.Columns {
		fmt.Fprint(tw, "---")
		if i < len(res.Columns)-1 {
			fmt.Fprint(tw, "\t")
		}
	}
	fmt.Fprintln(tw)

	for _, row := range res.Rows {
		for i, col := range res.Columns {
			fmt.Fprint(tw, row.Get(col).String())
			if i < len(res.Columns)-1 {
				fmt.Fprint(tw, "\t")
			}
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()

	fmt.Fprintf(w, "(%d rows)\n", len(res.Rows))
}
