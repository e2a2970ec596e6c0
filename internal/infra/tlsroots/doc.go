// Package tlsroots builds the trust store used to reach the STEAM backend.
//
// The system roots are always trusted. A PEM bundle given as api.ca_file
// is added on top, for self-hosted or staging backends whose certificate
// is issued by a private CA.
package tlsroots
