package main

import (
	"log/slog"
	"os"
)

func main() {
	srv, err := NewServer()
	if err != nil {
		slog.Error("server init failed", "error", err)
		os.Exit(1)
	}
	defer srv.Close()

	if err := srv.Run(); err != nil {
		slog.Error("server run error", "error", err)
		os.Exit(1)
	}
}
