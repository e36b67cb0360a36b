// Package media wraps the external ffprobe and ffmpeg tools.
//
// Prober reads stream metadata, PreviewGenerator grabs a still frame and
// stores it as a scaled JPEG, and Cutter crops normalized regions of a
// video into separate part files. All three run their tools through a
// Runner so tests can script tool output without the binaries installed.
package media
