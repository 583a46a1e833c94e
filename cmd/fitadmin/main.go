package main

import "github.com/dmitrijs2005/fittrack/cmd/fitadmin/cmd"

func main() {
	cmd.Execute()
}
