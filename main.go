package main

import "github.com/uitrack/uitrack/cmd"

func main() {
	cmd.Execute()
}
