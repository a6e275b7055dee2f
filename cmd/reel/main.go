package main

import "github.com/tessro/reel/internal/cli"

func main() {
	cli.Execute()
}
