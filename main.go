package main

import "github.com/clems4ever/cmdtree/cmd"

func main() {
	cmd.Execute()
}
