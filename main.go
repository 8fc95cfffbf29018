package main

import "github.com/yonasBSD/gitoxide/cmd"

func main() {
	cmd.Execute()
}
