package main

import "github.com/pfrederiksen/thai-lottery/internal/cli"

func main() {
	cli.Execute()
}
