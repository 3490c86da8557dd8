package main

import "github.com/daybrief/daybrief/cmd"

func main() {
	cmd.Execute()
}
