// Package ws streams boundary lifecycle events over WebSocket so frontends
// and dashboards can observe fault transitions and reloads as they happen.
package ws
