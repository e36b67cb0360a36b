// Package middleware provides HTTP middleware for the video splitter.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics labeled by route template
//   - CORS headers and preflight handling
//   - Panic recovery
package middleware
