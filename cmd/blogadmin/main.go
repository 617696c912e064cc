package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophblog/internal/admincli"
)

func main() {
	if err := admincli.Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}
