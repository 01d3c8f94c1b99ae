package main

import (
	"schedsim/internal/cli"
)

func main() {
	cli.Execute()
}
