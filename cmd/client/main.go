package main

import "aidpost/cmd/client/cmd"

func main() {
	cmd.Execute()
}
