// Package generation implements the AI generation lifecycle: an in-memory
// record store shared by API handlers and background work, an executor that
// simulates provider calls and advances records through
// queued→processing→completed/failed, and an orchestrator that validates
// requests, schedules work, and serves status, list and cancel queries.
// Cancellation is cooperative: a cancelled record stays cancelled because
// every terminal write from the executor is conditional on the record still
// being non-terminal.
package generation
