package fs

import (
	"io"
	"log/slog"
	"os"
)

func CloseOrLog(c io.Closer, what string) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close: "+what, "err", err)
	}
}

func WriteFile(r io.Reader, destPath string) error {
	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer CloseOrLog(out, destPath)
	if _, err := io.Copy(out, r); err != nil {
		return err
	}
	return nil
}
