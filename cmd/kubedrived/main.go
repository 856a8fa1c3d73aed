package main

import (
	"log"

	"github.com/NVIDIA/kubedrive/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatalf("kubedrived: %v", err)
	}
}
