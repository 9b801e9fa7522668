package main

import "github.com/tidewallet/walletcore/internal/cli"

func main() {
	cli.Execute()
}
