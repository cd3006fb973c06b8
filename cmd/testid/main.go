// Package main is the entry point for the testid CLI.
package main

import "github.com/viant/testid/cli"

func main() {
	cli.Execute()
}
