package main

import "github.com/user/clipper-cli/cmd"

func main() {
	cmd.Execute()
}
