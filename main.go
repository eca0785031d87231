package main

import "github.com/theirongolddev/pulse/cmd"

func main() {
	cmd.Execute()
}
