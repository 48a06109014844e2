package main

import "github.com/agentic-research/resolvecfg/cmd"

func main() {
	cmd.Execute()
}
