package main

import "topogen/cmd/topogen/cmd"

func main() {
	cmd.Execute()
}
