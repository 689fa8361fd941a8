package main

import "github.com/kamal-hamza/assetsym/cmd"

func main() {
	cmd.Execute()
}
