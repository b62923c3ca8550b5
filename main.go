package main

import (
	_ "embed"

	"github.com/ivywong/webwriter/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
