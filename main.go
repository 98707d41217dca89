package main

import (
	"github.com/ValentinKolb/rKV/cmd"
)

func main() {
	cmd.Execute()
}
