// Package signserver exposes textsign over HTTP.
//
// # Endpoints
//
//   - POST /v1/sign/{alg}: signs the request body, returns {"algorithm","tag"}
//   - POST /v1/verify/{alg}?tag=...: checks the body, returns {"algorithm","valid"}
//   - POST /v1/keys/{alg}[?printable=true]: returns freshly generated keys
//   - GET /healthz
//   - GET /metrics (Prometheus)
//
// Keys are read from the files named in config.Keys on every request; the
// service keeps no key material in memory between requests. Request bodies
// are buffered in full and capped by config.Server.MaxBodyBytes.
//
// Failures are reported as {"code","message"} with a status derived from
// the error: 400 for malformed tags, 404 for unknown algorithms, 413 for
// oversized bodies, 501 when no key is configured and 500 when a key file
// cannot be loaded. A tag that does not match is a 200 response with
// "valid": false.
package signserver
