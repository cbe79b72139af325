// Command paperembed generates sentence embeddings for papers in an arXiv
// cache database. It has three modes: a batch run over all papers missing a
// vector, an ad-hoc query that prints one vector to stdout, and a
// single-paper mode that embeds one record by identifier.
//
// Progress lines and vector output go to stdout; logs and errors go to
// stderr. Fatal errors print an "ERROR:"-prefixed line and exit non-zero,
// which is the contract the external serving component parses.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for OPENAI_API_KEY and PAPEREMBED_* overrides.
	godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
