package main

import "github.com/cloudmorphix/console/cmd"

func main() {
	cmd.Execute()
}
