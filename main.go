package main

import "github.com/solidforge/solidforge/cmd"

func main() {
	cmd.Execute()
}
