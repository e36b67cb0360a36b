/*
Package filesystem provides the filesystem primitives the pipelines build on:
stat/open with retry for NFS stale file handles, a Move that behaves like a
rename even across devices, and atomic file writes.

# Retry

StatWithRetry and OpenWithRetry retry only on ESTALE (errno 116) with
exponential backoff; every other error is returned immediately.

	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())

# Move

Move renames src onto dst, replacing dst. When the rename fails with EXDEV the
file is copied to a temporary sibling of dst, synced and renamed into place,
then src is removed. Callers can rely on src being gone after success.

# Metrics

The package does not import the metrics package. Metrics are recorded through
an Observer installed once at startup:

	filesystem.SetObserver(metrics.NewFilesystemObserver())
	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(layout.Volumes()))

Without an observer, recording is skipped, which keeps tests free of global
state.
*/
package filesystem
