// Package logging builds zerolog loggers from configuration and carries
// loggers and ULID trace IDs through a context.
package logging
