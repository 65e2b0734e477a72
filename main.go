package main

import "github.com/queercat/silly/cmd"

func main() {
	cmd.Execute()
}
