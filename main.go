package main

import "github.com/jsphweid/scorepad/cmd"

func main() {
	cmd.Execute()
}
