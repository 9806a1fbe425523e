package main

import "github.com/sublab/subtitle-api/cmd"

func main() {
	cmd.Execute()
}
