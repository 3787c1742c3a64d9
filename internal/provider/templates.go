package provider

import "reelforge/internal/model"

// Template describes a reusable prompt pattern offered by a provider.
// The prompt uses {placeholder} syntax; Parameters carries provider-specific
// defaults. Templates are descriptive data only and are never evaluated here.
type Template struct {
	Name       string         `json:"name"`
	Prompt     string         `json:"prompt"`
	Parameters map[string]any `json:"parameters"`
}

var promptTemplates = map[string][]Template{
	model.ProviderMidjourney: {
		{
			Name:       "Photorealistic Portrait",
			Prompt:     "photorealistic portrait of {subject}, professional lighting, 8k resolution --ar 16:9 --v 6",
			Parameters: map[string]any{"aspect_ratio": "16:9", "version": "6"},
		},
		{
			Name:       "Cinematic Scene",
			Prompt:     "cinematic {scene_description}, dramatic lighting, film grain, shot on ARRI Alexa --ar 21:9 --v 6",
			Parameters: map[string]any{"aspect_ratio": "21:9", "version": "6"},
		},
	},
	model.ProviderOpenAI: {
		{
			Name:       "Simple Description",
			Prompt:     "A {style} image of {subject} in {setting}",
			Parameters: map[string]any{"size": "1024x1024", "quality": "hd"},
		},
	},
	model.ProviderRunway: {
		{
			Name:       "Text to Video",
			Prompt:     "{action_description}, cinematic quality, 4K resolution",
			Parameters: map[string]any{"duration": 4, "resolution": "1280x768"},
		},
	},
	model.ProviderElevenLabs: {
		{
			Name:       "Narrator Voice",
			Prompt:     "{text_to_speak}",
			Parameters: map[string]any{"voice": "narrator", "stability": 0.7, "clarity": 0.8},
		},
	},
	model.ProviderVeo3: {
		{
			Name:       "High Quality Video",
			Prompt:     "{video_description}, high quality, realistic motion",
			Parameters: map[string]any{"resolution": "1920x1080", "fps": 30, "duration": 5},
		},
	},
}

// Templates returns the ordered prompt templates for a provider, or an empty
// slice for providers without templates.
func (r *Registry) Templates(provider string) []Template {
	templates, ok := promptTemplates[provider]
	if !ok {
		return []Template{}
	}
	return templates
}
