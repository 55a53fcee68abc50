package main

import "github.com/ddlkit/ddlkit/cmd"

func main() {
	cmd.Execute()
}
