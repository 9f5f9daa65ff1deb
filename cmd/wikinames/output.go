package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// outputJSON prints v as indented JSON to stdout.
func outputJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: encoding output: %s\n", err)
		os.Exit(ExitError)
	}
	fmt.Println(string(data))
}

// exitWithError prints an error in the selected output mode and exits.
func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}
