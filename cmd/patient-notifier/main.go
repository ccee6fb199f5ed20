package main

import "github.com/oshokin/patient-monitor/cmd/patient-notifier/cmd"

func main() {
	cmd.Execute()
}
