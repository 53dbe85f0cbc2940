package main

import "loancalc/cmd/client/cmd"

func main() {
	cmd.Execute()
}
