// Package api exposes the solver over HTTP.
//
// Routes:
//
//	POST /api/solve           solve a request, respond with an export document
//	GET  /api/presets         list preset names by group
//	GET  /api/presets/{name}  the request a preset expands to
//	GET  /health              liveness
//
// Fields left out of a solve body keep the CLI defaults.
package api
