package main

import "github.com/pfrederiksen/mat-schedule/internal/cli"

func main() {
	cli.Execute()
}
