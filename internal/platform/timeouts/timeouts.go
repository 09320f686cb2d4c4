// Package timeouts defines shared timeout constants used across OURHOUR
// processes so the durations stay discoverable in one place.
package timeouts

import "time"

// APIRequest caps a single call from the web service to the backend REST API.
const APIRequest = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StorePing caps startup connectivity checks against pending-record backends.
const StorePing = 3 * time.Second
