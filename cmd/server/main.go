// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"codeberg.org/teamhub/qna/internal/config"
	"codeberg.org/teamhub/qna/internal/server"
)

func main() {
	cmd := &cli.Command{
		Name:   "server",
		Usage:  "Internal Q&A forum server",
		Flags:  config.Flags(),
		Action: server.Run,
		Commands: []*cli.Command{
			{
				Name:   "recount-votes",
				Usage:  "Reconcile answer vote counters against vote rows",
				Flags:  config.Flags(),
				Action: server.RecountVotes,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
