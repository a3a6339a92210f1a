package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepth_SourceCount(t *testing.T) {
	tests := []struct {
		name  string
		depth Depth
		want  int
	}{
		{"shallow", DepthShallow, 3},
		{"medium", DepthMedium, 5},
		{"deep", DepthDeep, 10},
		{"unrecognized defaults to medium", Depth("exhaustive"), 5},
		{"empty defaults to medium", Depth(""), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.depth.SourceCount())
		})
	}
}

func TestResearchRequest_Validate(t *testing.T) {
	valid := &ResearchRequest{Topic: "quantum computing", Depth: "shallow"}
	assert.NoError(t, valid.Validate())

	noDepth := &ResearchRequest{Topic: "quantum computing"}
	assert.NoError(t, noDepth.Validate())

	empty := &ResearchRequest{}
	assert.Error(t, empty.Validate())

	badDepth := &ResearchRequest{Topic: "quantum computing", Depth: "bottomless"}
	assert.Error(t, badDepth.Validate())
}
