// Package memory sets Go's soft memory limit (GOMEMLIMIT) from the
// container memory limit.
//
// The service shares its container with the ffmpeg and ffprobe processes it
// starts, and a crop re-encode can use far more memory than the Go heap.
// Only a fraction of the container limit is therefore handed to the Go
// runtime; MEMORY_RATIO controls that fraction (default 0.5).
//
// An explicit GOMEMLIMIT in the environment always wins and is only
// reported.
//
// Kubernetes can pass the limit through the Downward API:
//
//	env:
//	  - name: MEMORY_LIMIT
//	    valueFrom:
//	      resourceFieldRef:
//	        resource: limits.memory
package memory
