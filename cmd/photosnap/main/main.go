package main

import (
	"context"
	"os"

	"github.com/arthur-debert/photosnap/cmd/photosnap"
)

func main() {
	os.Exit(photosnap.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
