package main

import (
	"log"

	"ev-energy-analytics/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
