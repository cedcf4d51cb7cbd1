package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vitos/cryptotrackr/internal/usecase"
)

// Reads bot output from the arguments, or stdin when none are given, and
// prints the extracted wallet fields as JSON.
func main() {
	text := strings.Join(os.Args[1:], " ")
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read stdin: %v\n", err)
			os.Exit(1)
		}
		text = string(data)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(usecase.ParseWalletSnippet(text)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
		os.Exit(1)
	}
}
