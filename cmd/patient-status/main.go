package main

import "github.com/oshokin/patient-monitor/cmd/patient-status/cmd"

func main() {
	cmd.Execute()
}
