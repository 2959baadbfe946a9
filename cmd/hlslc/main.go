package main

import (
	"github.com/claynathaniel/vkd3d/pkg/cmd"
)

func main() {
	cmd.Execute()
}
