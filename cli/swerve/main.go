// Package main is the CLI command itself.
package main

import (
	"log"
	"os"

	"go.viam.com/swerve/cli"
)

func main() {
	if err := cli.NewApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
