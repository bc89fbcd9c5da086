package main

import (
	"os"

	"github.com/kasambhusal/sajha-gyan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
