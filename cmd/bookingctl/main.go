// Command bookingctl is the operational tool for the booking write path:
// rebuilding read model rows from the event log and exporting the log for
// audits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/tripmesh/bookingcore/booking/projection"
	"github.com/tripmesh/bookingcore/booking/readmodel"
	"github.com/tripmesh/bookingcore/booking/shell"
	"github.com/tripmesh/bookingcore/config"
	"github.com/tripmesh/bookingcore/eventstore"
	"github.com/tripmesh/bookingcore/eventstore/postgresengine"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string) error {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		return cfgErr
	}

	zapLogger, logErr := config.NewLogger(cfg)
	if logErr != nil {
		return logErr
	}
	defer zapLogger.Sync() //nolint:errcheck

	logger := shell.NewZapLogger(zapLogger)

	pool, poolErr := config.NewPGXPool(ctx, cfg)
	if poolErr != nil {
		return poolErr
	}
	defer pool.Close()

	eventStore, storeErr := postgresengine.NewEventStoreFromPGXPool(
		pool,
		postgresengine.WithTableName(cfg.EventsTableName),
		postgresengine.WithLogger(logger),
	)
	if storeErr != nil {
		return storeErr
	}

	switch command {
	case "rebuild":
		return runRebuild(ctx, args, eventStore, pool, cfg, logger, zapLogger)

	case "export":
		return runExport(ctx, args, eventStore)

	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runRebuild(
	ctx context.Context,
	args []string,
	eventStore postgresengine.EventStore,
	pool *pgxpool.Pool,
	cfg config.Config,
	logger eventstore.Logger,
	zapLogger *zap.Logger,
) error {

	flags := flag.NewFlagSet("rebuild", flag.ExitOnError)
	bookingID := flags.String("booking-id", "", "rebuild only this booking's row")
	all := flags.Bool("all", false, "rebuild every row by replaying the whole log")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if (*bookingID != "") == *all {
		return fmt.Errorf("exactly one of --booking-id or --all is required")
	}

	store, storeErr := readmodel.NewPostgresStore(
		pool,
		readmodel.WithBookingsTableName(cfg.BookingsTableName),
		readmodel.WithStoreLogger(logger),
	)
	if storeErr != nil {
		return storeErr
	}

	projector := projection.NewProjector(eventStore, store, logger)

	if *all {
		if err := projector.RebuildAll(ctx); err != nil {
			return err
		}

		zapLogger.Info("rebuilt all read model rows")

		return nil
	}

	if err := projector.Rebuild(ctx, *bookingID); err != nil {
		return err
	}

	zapLogger.Info("rebuilt read model row", zap.String("booking_id", *bookingID))

	return nil
}

func runExport(ctx context.Context, args []string, eventStore postgresengine.EventStore) error {
	flags := flag.NewFlagSet("export", flag.ExitOnError)
	fromSequence := flags.Uint64("from", 1, "first global sequence number to export (inclusive)")
	limit := flags.Uint("limit", 0, "maximum number of events to export, 0 for all")

	if err := flags.Parse(args); err != nil {
		return err
	}

	events, readErr := eventStore.ReadAll(ctx, eventstore.SequenceNumberUint(*fromSequence), *limit)
	if readErr != nil {
		return readErr
	}

	encoder := jsoniter.ConfigFastest.NewEncoder(os.Stdout)

	for _, event := range events {
		record := exportRecord{
			SequenceNumber: event.SequenceNumber,
			EventID:        event.EventID,
			AggregateID:    event.AggregateID,
			EventType:      event.EventType,
			Version:        event.Version,
			OccurredAt:     event.OccurredAt.Format("2006-01-02T15:04:05.999999Z07:00"),
			Payload:        event.PayloadJSON,
			Metadata:       event.MetadataJSON,
		}

		if err := encoder.Encode(record); err != nil {
			return err
		}
	}

	return nil
}

type exportRecord struct {
	SequenceNumber eventstore.SequenceNumberUint `json:"sequence_number"`
	EventID        string                        `json:"event_id"`
	AggregateID    string                        `json:"aggregate_id"`
	EventType      string                        `json:"event_type"`
	Version        eventstore.VersionUint        `json:"version"`
	OccurredAt     string                        `json:"occurred_at"`
	Payload        jsoniter.RawMessage           `json:"payload"`
	Metadata       jsoniter.RawMessage           `json:"metadata"`
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  bookingctl rebuild --booking-id <uuid> | --all
  bookingctl export [--from <sequence>] [--limit <count>]`)
}
