package main

import "github.com/KaramelBytes/noshow-cli/cmd"

func main() {
	cmd.Execute()
}
