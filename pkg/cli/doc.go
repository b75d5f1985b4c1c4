// Package cli provides the httpmock command-line interface.
//
// The commands work on rule files and never open a socket:
//   - validate: load rule files and globs, check their schema and install them
//   - match: install rules and show which one answers a single request
//   - version: show httpmock version
//
// Global flags:
//
//	--json        Output results as JSON
//	--log-level   Engine log level (debug, info, warn, error)
//
// Without --log-level the engine logger follows HTTPMOCK_LOG_LEVEL and
// HTTPMOCK_LOG_FORMAT and stays silent when neither is set.
package cli
