package main

import (
	"github.com/lynjun02/RESUME-TAILOR-TOOL/cmd"
)

func main() {
	cmd.Execute()
}
