package main

import (
	"os"

	"github.com/HoangNamHai/pmquest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
