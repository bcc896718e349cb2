package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ruleWidth is the width of the separator lines in human output.
const ruleWidth = 72

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// rule returns a horizontal separator labelled with title.
func rule(title string) string {
	line := "── " + title + " "
	if n := ruleWidth - len([]rune(line)); n > 0 {
		line += strings.Repeat("─", n)
	}
	return line
}
