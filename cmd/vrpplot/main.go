// Command vrpplot solves routing problems and writes route charts.
//
//	vrpplot -problem demo.yaml -out chart.png
//	vrpplot -clusters -seed 42 -out clusters.svg
//	vrpplot -batch problems/ -outdir charts/ -format png
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}
