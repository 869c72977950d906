// Command server runs the renderguard service: boundary-protected view
// rendering for blueprint-defined apps, with an HTTP API, a WebSocket
// event stream, and Prometheus metrics.
package main
