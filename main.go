package main

import "github.com/tocview/tocview/cmd"

func main() {
	cmd.Execute()
}
