package main

import (
	"os"
	"runtime/debug"

	"github.com/siyuan-infoblox/importwrap/pkg/cmd"
)

func main() {
	var moduleVersion string
	if info, ok := debug.ReadBuildInfo(); ok {
		moduleVersion = info.Main.Version
	}
	if err := cmd.Execute(moduleVersion); err != nil {
		os.Exit(1)
	}
}
