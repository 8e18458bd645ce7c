package main

import "github.com/worktrack/backend/cmd"

func main() {
	cmd.Execute()
}
