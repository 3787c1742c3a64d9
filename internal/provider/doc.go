// Package provider holds the static catalog of AI generation providers:
// which content types each one supports, whether its credentials are present,
// per-pair duration estimates, and the prompt templates it offers. The
// catalog is built once at startup and shared read-only.
package provider
