package main

import (
	"github.com/xinjiayu/rxlite/cmd/rxplay/cmd"
)

func main() {
	cmd.Execute()
}
