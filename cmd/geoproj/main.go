package main

import "geoproj/internal/cli"

func main() {
	cli.Execute()
}
