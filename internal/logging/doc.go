// Package logging builds the process logger: a console or JSON handler for
// humans and machines, fanned out together with the OpenTelemetry log bridge.
package logging
