package main

import "github.com/atomicstack/deploy-checklist/cmd"

func main() {
	cmd.Execute()
}
