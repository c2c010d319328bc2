package main

import "laptop-ledger/internal/cli"

func main() {
	cli.Execute()
}
