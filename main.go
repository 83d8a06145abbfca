package main

import "github.com/dotcommander/cognishield/cmd"

func main() {
	cmd.Execute()
}
