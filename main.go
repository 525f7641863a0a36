package main

import "github.com/cmmoran/elementgen/cmd"

func main() {
	cmd.Execute()
}
