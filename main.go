package main

import "shopfeed/cmd"

func main() {
	cmd.Execute()
}
