// Package main is the entry point for the rhythm2midi API server
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/james-see/rhythm2midi/pkg/api"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	flag.Parse()

	fmt.Printf("rhythm2midi API listening on :%d\n", *port)
	fmt.Printf("POST tap documents to http://localhost:%d/api/v1/convert\n", *port)
	fmt.Printf("Swagger UI at http://localhost:%d/swagger/index.html\n", *port)

	if err := api.StartServer(*port); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
