package main

import "datagroom/cmd"

func main() {
	cmd.Execute()
}
