// Package log builds the application's slog loggers.
//
// Every logger is wrapped in a RedactingHandler, which masks personal data
// and credentials before they reach the output: values logged under keys
// such as email, teléfono, nombre, ip or cookie, and string values that look
// like e-mail addresses, phone numbers, Spanish ID numbers or bearer tokens.
// Visitors submit calculator inputs and contact forms, so request logging
// must never leak who they are.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Warn("contact form rejected", "email", addr) // email=[REDACTED]
//	slog.SetDefault(logger)
package log
