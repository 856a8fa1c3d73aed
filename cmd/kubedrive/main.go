package main

import "github.com/NVIDIA/kubedrive/pkg/cli"

func main() {
	cli.Execute()
}
