package main

import "github.com/04pril/minesweeper-miniapp/cmd"

func main() {
	cmd.Execute()
}
