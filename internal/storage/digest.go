package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"video-splitter/internal/filesystem"
	"video-splitter/internal/metrics"
)

const digestChunkSize = 64 * 1024

// Digest returns the hex SHA-256 of the file at path. The file is streamed in
// fixed-size chunks; ctx is checked between chunks.
func Digest(ctx context.Context, path string) (string, error) {
	f, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return "", fmt.Errorf("open %s for hashing: %w", path, err)
	}
	defer f.Close()

	return DigestReader(ctx, f)
}

// DigestReader hashes r until EOF.
func DigestReader(ctx context.Context, r io.Reader) (string, error) {
	h := sha256.New()
	n, err := io.CopyBuffer(h, &ctxReader{ctx: ctx, r: r}, make([]byte, digestChunkSize))
	metrics.BytesHashedTotal.Add(float64(n))
	if err != nil {
		return "", fmt.Errorf("hash content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
