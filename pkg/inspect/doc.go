// Package inspect serves live views of mounted dotrender trees over HTTP.
//
// An Inspector tracks roots mounted on headless documents. Every document
// mutation refreshes a cached snapshot of the root; HTTP handlers only ever
// read that cache, so they never touch the host tree from their own
// goroutines.
//
// Routes:
//
//	GET /roots              list of tracked roots (JSON)
//	GET /roots/{id}         current HTML, with an ETag
//	GET /roots/{id}/stats   record statistics (JSON)
//	GET /ws                 websocket stream of CBOR-encoded frames
//	GET /metrics            Prometheus metrics, when a gatherer is set
//
// Root ids are ULIDs, so listing them in id order lists them in tracking
// order.
package inspect
