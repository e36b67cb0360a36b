// Package storage owns content addressing: the SHA-256 digest that identifies
// an upload, the canonical id ({digest}{ext}) clients use, and the directory
// layout under the upload root.
//
//	{root}/original/{digest}{ext}
//	{root}/preview/{digest}.jpg
//	{root}/parts/{digest}/{digest}_{index}{ext}
//	{root}/incoming/
//
// Nothing in this package keeps state; identical bytes always map to the same
// paths, which is what makes re-uploads idempotent.
package storage
