package main

import (
	"context"
	"log"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("questboard: %v", err)
	}
}
