// Command cmd generates a batch of QR codes and prints their participation
// URLs, one per line, ready to be rendered and printed.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"tombola/internal/config"
	"tombola/internal/storage"
	"tombola/internal/tombola"

	"github.com/google/logger"
	"github.com/joho/godotenv"
)

func main() {
	count := flag.Int("count", 50, "number of QR codes to create (1-500)")
	flag.Parse()

	if os.Getenv("ENV_CHEK") == "" {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintln(os.Stderr, "No .env file, using the process environment")
		}
	}
	defer logger.Init("tombola-qrcodes", false, false, io.Discard).Close()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.StorageDriver == config.DriverMemory {
		fmt.Fprintln(os.Stderr, "STORAGE_DRIVER=memory: codes would be lost when this command exits")
		os.Exit(1)
	}

	store, _, err := storage.OpenStore(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "storage:", err)
		os.Exit(1)
	}

	if err := run(store, cfg.PublicURL, *count, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(store tombola.Store, publicURL string, count int, out io.Writer) error {
	svc, err := tombola.NewService(store)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	qrs, err := svc.CreateQRCodes(ctx, count)
	if err != nil {
		return err
	}
	for _, qr := range qrs {
		fmt.Fprintln(out, tombola.ParticipationURL(publicURL, qr.ID))
	}
	return nil
}
