package main

import "github.com/minish-sh/minish/cmd"

func main() {
	cmd.Execute()
}
