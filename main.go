package main

import "github.com/KaramelBytes/cohort-cli/cmd"

func main() {
	cmd.Execute()
}
