package main

import "github.com/klytics/devkit/cmd"

func main() {
	cmd.Execute()
}
