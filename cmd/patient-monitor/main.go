package main

import "github.com/oshokin/patient-monitor/cmd/patient-monitor/cmd"

func main() {
	cmd.Execute()
}
