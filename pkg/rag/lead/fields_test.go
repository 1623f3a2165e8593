package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name      string
		collected map[string]string
		extracted map[string]string
		want      map[string]string
	}{
		{
			name:      "new values fill unknowns",
			collected: map[string]string{},
			extracted: map[string]string{"name": "John", "email": "john@x.com", "platform": ""},
			want:      map[string]string{"name": "John", "email": "john@x.com"},
		},
		{
			name:      "empty never overwrites",
			collected: map[string]string{"name": "John", "email": "john@x.com"},
			extracted: EmptyFields(),
			want:      map[string]string{"name": "John", "email": "john@x.com"},
		},
		{
			name:      "non-empty overwrites",
			collected: map[string]string{"name": "John", "platform": "TikTok"},
			extracted: map[string]string{"name": "", "email": "", "platform": "YouTube"},
			want:      map[string]string{"name": "John", "platform": "YouTube"},
		},
		{
			name:      "unknown keys are ignored",
			collected: nil,
			extracted: map[string]string{"phone": "123"},
			want:      map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.collected, tt.extracted))
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	collected := map[string]string{"name": "John"}
	extracted := map[string]string{"name": "Jane"}

	out := Merge(collected, extracted)

	assert.Equal(t, "Jane", out["name"])
	assert.Equal(t, "John", collected["name"])
}

func TestMissing(t *testing.T) {
	assert.Equal(t, []string{"name", "email", "platform"}, Missing(map[string]string{}))
	assert.Equal(t, []string{"name", "platform"}, Missing(map[string]string{"email": "a@b.co"}))
	assert.Equal(t, []string{}, Missing(map[string]string{"name": "n", "email": "e", "platform": "p"}))
}

func TestWantsOnboarding(t *testing.T) {
	tests := []struct {
		text     string
		captured bool
		want     bool
	}{
		{"yes", true, true},
		{"  Yes Sure ", true, true},
		{"OK", true, true},
		{"yup", true, true},
		{"send me the checklist", true, true},
		{"what are the next steps?", true, true},
		{"help me get started", true, true},
		{"yes please", true, false},
		{"thanks", true, false},
		{"checklist", false, false},
		{"yes", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, WantsOnboarding(tt.text, tt.captured))
		})
	}
}
