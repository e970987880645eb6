package main

import "github.com/dalemusser/coursecatalog/internal/cli"

func main() {
	cli.Execute()
}
