package main

import "github.com/tensorplex-labs/scamviz/internal/cli"

func main() {
	cli.Execute()
}
