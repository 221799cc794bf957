package main

import "github.com/theirongolddev/wayfare/cmd"

func main() {
	cmd.Execute()
}
