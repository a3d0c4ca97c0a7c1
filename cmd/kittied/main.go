package main

import (
	"runtime"

	cmd "github.com/shenzhen-arrom/kitties/cmd/kittied/commands"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	cmd.Execute()
}
