// Package logger configures the global zerolog logger.
//
// Output goes to the console, to level split rotating files, or both. Every
// log statement is counted per level in the log_statements_total prometheus
// counter.
package logger
