package main

import (
	"os"

	"code_reviewer/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
