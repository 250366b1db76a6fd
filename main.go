package main

import "github.com/penwyp/vendsync/cmd"

func main() {
	cmd.Execute()
}
