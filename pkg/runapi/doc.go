// Package runapi exposes runs over HTTP.
//
// Router mounts:
//
//	POST /v1/runs       run input as a JSON object, answers with the run output document
//	GET  /health/live   liveness probe
//	GET  /health/ready  readiness probe running the configured checks
//
// Failed runs answer with {"error": {"code": ..., "message": ...}} where the
// message is safe to show to users. Input errors map to 422, provider and
// dataset failures to 502, and everything else to 500.
//
// Every request carries an X-Request-ID, taken from the request when valid
// or generated otherwise. LoggerExtractor adds it to log records.
package runapi
