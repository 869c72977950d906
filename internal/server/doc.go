// Package server wires configuration, the view engine, the app manager,
// and the HTTP/WebSocket surface into one runnable service.
package server
