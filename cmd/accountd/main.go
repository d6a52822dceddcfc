package main

import (
	"os"

	"github.com/gowrivallaban/account-open-agenticAI/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
