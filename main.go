package main

import "github.com/foggyhq/foggybot/cmd"

func main() {
	cmd.Execute()
}
