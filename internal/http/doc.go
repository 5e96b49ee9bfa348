// Package http provides HTTP handlers and middleware for the MarkDays API.
//
// The router exposes the following endpoints:
//   - POST /sessions: opens a generation session with default settings and
//     returns its state, including the session id used by the other session
//     endpoints.
//   - GET /sessions/{id}: returns the session state (settings, flags, last
//     generated document).
//   - PATCH /sessions/{id}/settings: applies partial settings mutations;
//     string fields are sanitized on write.
//   - POST /sessions/{id}/preset: applies a date-range preset
//     ({"kind":"days"|"months","amount",N,"anchor":"start"|"end"}).
//   - POST /sessions/{id}/generate: runs the generation engine, gated by the
//     regeneration rule.
//   - POST /sessions/{id}/reset: restores default settings and clears the
//     document.
//   - GET /sessions/{id}/export: downloads the last document as a Markdown
//     attachment named {title}_{timestamp}.md.
//   - POST /generate: stateless one-shot generation from a full settings
//     payload.
//   - POST /validate: per-field validation results for a settings payload.
//   - GET /holidays?from=YYYY-MM-DD&to=YYYY-MM-DD: holiday annotations for a
//     date range.
//   - GET /settings, PUT /settings, DELETE /settings: the persisted settings
//     slot (presentation options only, never the date range).
//   - GET /health: liveness probe.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
