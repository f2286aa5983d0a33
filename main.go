package main

import "github.com/nextlevelbuilder/jotbot/cmd"

func main() {
	cmd.Execute()
}
