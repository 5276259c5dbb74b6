package main

import "github.com/crystaldolphin/skillhub/cmd"

func main() {
	cmd.Execute()
}
