package main

import "github.com/manimj777-glitch/dataprocessor-builds/cmd/run-build/cmd"

func main() {
	cmd.Execute()
}
