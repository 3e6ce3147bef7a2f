package main

import (
	"os"

	"github.com/bnema/dear-my-friend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
