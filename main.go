package main

import (
	"os"

	"github.com/aaronpuchert/logic/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
