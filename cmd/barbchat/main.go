package main

import "github.com/diogo/barbchat/internal/commands"

func main() {
	commands.Execute()
}
