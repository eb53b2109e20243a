package main

import "github.com/marketconnect/riskmap-agent/app/internal/cli"

func main() {
	cli.Execute()
}
