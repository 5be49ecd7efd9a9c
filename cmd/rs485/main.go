package main

import "github.com/nemecec/rs485/internal/cli"

func main() {
	cli.Execute()
}
