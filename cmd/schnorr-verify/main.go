package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)

	if err := app.Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errNotVerified) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
