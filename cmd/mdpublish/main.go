package main

import (
	"os"

	"git.home.luguber.info/inful/mdpublish/cmd/mdpublish/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], commands.Streams{Stdout: os.Stdout, Stderr: os.Stderr}, os.LookupEnv))
}
