package main

//go-build: CGO_ENABLED=0

import (
	"github.com/mcusim/softuart/pkg/cli/sh"
	linkmqtt "github.com/mcusim/softuart/pkg/link/mqtt"
)

func init() {
	linkmqtt.SetupFlags()
}

func main() {
	sh.Main()
}
