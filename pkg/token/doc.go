// Package token provides helpers for handling opaque bearer tokens.
//
// Bearer tokens issued by the host platform are never printed or logged.
// Fingerprint yields a short, stable, non-reversible identifier so that
// operators can tell two tokens apart in `auth status` output and logs.
package token
