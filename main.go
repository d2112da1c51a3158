package main

import (
	"os"

	"github.com/Karapus/sem7-compilers/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
