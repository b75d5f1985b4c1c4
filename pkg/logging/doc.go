// Package logging configures the slog loggers used by the httpmock engine.
//
// An engine is silent by default (Nop). Tests usually route engine records
// into the test output:
//
//	eng := engine.New(engine.WithLogger(logging.NewTB(t)))
//
// Programs and the CLI pick the level and handler from the environment:
//
//	HTTPMOCK_LOG_LEVEL=debug HTTPMOCK_LOG_FORMAT=json httpmock match -r rules.yaml -u /users
//
//	eng := engine.New(engine.WithLogger(logging.FromEnv(os.Stderr)))
//
// or build one explicitly with New(Config{Level, Format, Output}).
package logging
