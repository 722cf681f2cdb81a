package main

import (
	"log"

	"github.com/Niksavenkov/shopbot/core/cmd"
)

func main() {
	if err := cmd.Run(cmd.Options{DefaultConfigPath: "config.yaml"}); err != nil {
		log.Fatalf("shopbot: %v", err)
	}
}
