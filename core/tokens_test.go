package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens_EmptyContent(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
}

func TestEstimateTokens_ShortContentUsesCharacterEstimate(t *testing.T) {
	tokens := EstimateTokens("print('hi')")
	assert.Greater(t, tokens, 0)
}

func TestEstimateTokens_LongerContentYieldsMoreTokens(t *testing.T) {
	short := EstimateTokens("def add(a, b): return a + b")
	long := EstimateTokens(strings.Repeat("def add(a, b): return a + b\n", 20))
	assert.Greater(t, long, short)
}

func TestEstimateTokens_Deterministic(t *testing.T) {
	content := "for i in range(10):\n    print(i)"
	assert.Equal(t, EstimateTokens(content), EstimateTokens(content))
}

func TestGetDefaultModel_IsSonnet(t *testing.T) {
	model := GetDefaultModel()
	assert.NotEmpty(t, model)
	assert.Contains(t, string(model), "sonnet")
}
