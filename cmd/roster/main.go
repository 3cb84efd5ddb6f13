// Command roster drives a manual-edit session against a running roster
// backend: inspect the month, assign, unassign or move a resident, or
// list the legal target cells for one resident.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"shiftroster/internal/capacity"
	"shiftroster/internal/client"
	"shiftroster/internal/config"
	"shiftroster/internal/logging"
	"shiftroster/internal/roster"
)

func main() {
	var (
		month        = flag.String("month", "", "target month YYYY-MM")
		date         = flag.String("date", "", "target date YYYY-MM-DD")
		resident     = flag.String("resident", "", "resident name")
		hospital     = flag.String("hospital", "", "hospital name")
		fromDate     = flag.String("from-date", "", "move source date")
		fromHospital = flag.String("from-hospital", "", "move source hospital (optional)")
		toDate       = flag.String("to-date", "", "move destination date")
		toHospital   = flag.String("to-hospital", "", "move destination hospital")
		maxAssign    = flag.Int("max", 0, "per-resident cap override (0 = backend default)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, "console", "roster-cli")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	boundary := client.New(client.Options{
		BaseURL:    cfg.BackendURL,
		Timeout:    cfg.RequestTimeout,
		RetryCount: cfg.RetryCount,
	}, logger)
	session := roster.NewSession(boundary, capacity.NewEngine(cfg.UniversityHospital), cfg.DefaultMaxAssignments, logger)

	ctx := context.Background()
	switch flag.Arg(0) {
	case "show":
		sched, err := session.Store.Get(ctx, *month)
		if err != nil {
			log.Fatalf("show: %v", err)
		}
		printJSON(sched)

	case "assign":
		out, err := session.Dispatch(ctx, roster.RequestAssign{
			Month: *month, Date: *date, Resident: *resident, Hospital: *hospital, MaxAssignments: *maxAssign,
		})
		if err != nil {
			log.Fatalf("assign: %v", err)
		}
		printJSON(out.Schedule)

	case "unassign":
		out, err := session.Dispatch(ctx, roster.RequestUnassign{
			Month: *month, Date: *date, Resident: *resident,
		})
		if err != nil {
			log.Fatalf("unassign: %v", err)
		}
		printJSON(out.Schedule)

	case "move":
		out, err := session.Dispatch(ctx, roster.RequestMove{
			Month: *month, Resident: *resident,
			FromDate: *fromDate, FromHospital: *fromHospital,
			ToDate: *toDate, ToHospital: *toHospital,
			MaxAssignments: *maxAssign,
		})
		if err != nil {
			log.Fatalf("move: %v", err)
		}
		printJSON(out.Schedule)

	case "targets":
		if _, err := session.Dispatch(ctx, roster.SelectResident{Resident: *resident}); err != nil {
			log.Fatalf("targets: %v", err)
		}
		cells, err := session.Targets(ctx, *month)
		if err != nil {
			log.Fatalf("targets: %v", err)
		}
		printJSON(cells)

	default:
		fmt.Fprintln(os.Stderr, "usage: roster [flags] <show|assign|unassign|move|targets>")
		flag.PrintDefaults()
		os.Exit(2)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
