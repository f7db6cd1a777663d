package main

import (
	"musicbridge/cmd"
)

func main() {
	cmd.Execute()
}
