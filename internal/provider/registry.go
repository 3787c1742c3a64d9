package provider

import (
	"sort"

	"reelforge/internal/config"
	"reelforge/internal/model"
)

// Base duration estimates per content type, in seconds.
var baseDurations = map[string]int{
	model.TypeImage: 30,
	model.TypeVideo: 180,
	model.TypeAudio: 60,
	model.TypeText:  10,
}

// defaultBaseDuration applies to unrecognized content types.
const defaultBaseDuration = 60

// entry is the static per-provider configuration held by the registry.
type entry struct {
	apiKey         string
	alwaysOn       bool
	supportedTypes []string
	multiplier     float64
}

// Status summarizes a provider for API responses.
type Status struct {
	Available      bool     `json:"available"`
	Configured     bool     `json:"configured"`
	SupportedTypes []string `json:"supported_types"`
}

// Registry is a read-only catalog of generation providers. It is constructed
// once at process start and never mutated afterwards, so it is safe for
// concurrent use without locking.
type Registry struct {
	providers map[string]entry
}

// NewRegistry builds the provider catalog from configured credentials.
// veo3 is the demo provider and reports configured regardless of credentials.
func NewRegistry(cfg config.Config) *Registry {
	return &Registry{
		providers: map[string]entry{
			model.ProviderOpenAI: {
				apiKey:         cfg.OpenAIKey,
				supportedTypes: []string{model.TypeImage, model.TypeText},
				multiplier:     1.0,
			},
			model.ProviderMidjourney: {
				apiKey:         cfg.MidjourneyKey,
				supportedTypes: []string{model.TypeImage},
				multiplier:     1.5,
			},
			model.ProviderRunway: {
				apiKey:         cfg.RunwayKey,
				supportedTypes: []string{model.TypeVideo, model.TypeImage},
				multiplier:     2.0,
			},
			model.ProviderElevenLabs: {
				apiKey:         cfg.ElevenLabsKey,
				supportedTypes: []string{model.TypeAudio},
				multiplier:     1.2,
			},
			model.ProviderVeo3: {
				alwaysOn:       true,
				supportedTypes: []string{model.TypeVideo},
				multiplier:     3.0,
			},
		},
	}
}

// Configured reports whether the provider's required credential is present.
// Unknown providers report false.
func (r *Registry) Configured(provider string) bool {
	e, ok := r.providers[provider]
	if !ok {
		return false
	}
	if e.alwaysOn {
		return true
	}
	return e.apiKey != ""
}

// Available reports whether the provider can accept work. Currently identical
// to Configured; kept distinct because availability may later include live
// health checks.
func (r *Registry) Available(provider string) bool {
	return r.Configured(provider)
}

// SupportedTypes returns the content types the provider can generate.
// Unknown providers return an empty slice.
func (r *Registry) SupportedTypes(provider string) []string {
	e, ok := r.providers[provider]
	if !ok {
		return []string{}
	}
	types := make([]string, len(e.supportedTypes))
	copy(types, e.supportedTypes)
	return types
}

// Supports reports whether the provider can generate the given content type.
func (r *Registry) Supports(provider, contentType string) bool {
	for _, t := range r.SupportedTypes(provider) {
		if t == contentType {
			return true
		}
	}
	return false
}

// EstimateDuration returns the estimated generation time in seconds for a
// (content type, provider) pair: base duration scaled by the provider's
// multiplier, truncated to an integer. Unknown types fall back to the default
// base duration and unknown providers to a 1.0 multiplier.
func (r *Registry) EstimateDuration(contentType, provider string) int {
	base, ok := baseDurations[contentType]
	if !ok {
		base = defaultBaseDuration
	}
	multiplier := 1.0
	if e, ok := r.providers[provider]; ok {
		multiplier = e.multiplier
	}
	return int(float64(base) * multiplier)
}

// Names returns all registered provider identifiers, sorted for a stable
// API response.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StatusOf returns the availability summary for a single provider.
func (r *Registry) StatusOf(provider string) Status {
	return Status{
		Available:      r.Available(provider),
		Configured:     r.Configured(provider),
		SupportedTypes: r.SupportedTypes(provider),
	}
}
