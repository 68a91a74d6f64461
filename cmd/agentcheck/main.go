package main

import (
	agentcmd "github.com/initializ/agentcheck/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	agentcmd.SetVersionInfo(version, commit)
	agentcmd.Execute()
}
