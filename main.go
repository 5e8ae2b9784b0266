package main

import "github.com/Tiliavir/punchcard/cmd"

func main() {
	cmd.Execute()
}
