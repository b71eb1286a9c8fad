package main

import "github.com/felixgeelhaar/abacus/cmd/abacus/cli"

func main() {
	cli.Execute()
}
