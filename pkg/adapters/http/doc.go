// Package http exposes the tours of a session.Manager as a JSON API.
//
// Routes:
//
//	GET  /healthz
//	GET  /info
//	GET  /active
//	GET  /tours
//	GET  /tours/{name}
//	GET  /tours/{name}/events          (server-sent status updates)
//	POST /tours/{name}/start
//	POST /tours/{name}/{next|back|hide|complete}
//	POST /tours/{name}/cancel          {"confirm": true}
//	POST /tours/{name}/show/{key}      (step id or zero-based index)
package http
