// Package domain defines the core domain models for steam-cli.
//
// Domain models are plain value types decoded from the STEAM backend's
// JSON payloads. They carry no IO dependencies. This package contains:
//
//   - Envelope: the {data: ...} response wrapper
//   - Session: the server-issued session confirmation
//   - Catalog models: courses, classes, modules, lessons, galleries,
//     evaluations, attendances, time tables, facilities and news
//   - Result: the Loading | Success | Failure view state
//   - Errors: the client error taxonomy
package domain
