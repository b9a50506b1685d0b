package main

import "zoneminder-cli/cmd"

func main() {
	cmd.Execute()
}
