package main

import (
	"os"

	"github.com/snmp-reporter/cmd/agent"
)

func main() {
	os.Exit(agent.Execute())
}
