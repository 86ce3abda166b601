package main

import "github.com/pitwall/f1insight/cmd"

func main() {
	cmd.Execute()
}
