package main

import "github.com/manimj777-glitch/dataprocessor-builds/cmd/run-release/cmd"

func main() {
	cmd.Execute()
}
