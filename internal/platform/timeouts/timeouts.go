// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// UpstreamRequest caps a single call to a third-party API such as Luma.
const UpstreamRequest = 10 * time.Second

// FrameRender caps one on-demand frame render served over HTTP.
const FrameRender = 20 * time.Second

// SocketWrite caps a single websocket frame write to a peer.
const SocketWrite = 5 * time.Second
