// Command settle computes balances and transfers for a ledger file.
//
// Usage:
//
//	settle [-compact] [ledger.json]
//
// The ledger is a settle request ({"people": [...], "transactions": [...]})
// read from the named file, or from stdin when no file is given.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mmynk/settleup/internal/service"
	"github.com/mmynk/settleup/pkg/api"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("settle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	compact := fs.Bool("compact", false, "print the result on one line")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "usage: settle [-compact] [ledger.json]")
		return 2
	}

	in := stdin
	if path := fs.Arg(0); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(stderr, "settle: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	var req api.SettleRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		fmt.Fprintln(stderr, "Invalid request body.")
		return 1
	}

	resp, err := service.Compute(&req)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	if !*compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintf(stderr, "settle: %v\n", err)
		return 1
	}
	return 0
}
