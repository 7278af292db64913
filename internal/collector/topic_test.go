package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTopicFilterMatchesSubstrings(t *testing.T) {
	m := DefaultTopicFilter()

	cases := []struct {
		text string
		want bool
	}{
		{"GenAI startups are everywhere", true},
		{"Running GPT4 locally", true},
		{"Why AIs hallucinate", true},
		{"EdgeAI chips ship", true},
		{"LLMOps tooling roundup", true},
		{"国产大模型再发布", true},
		{"Office party photos", false},
		{"Woodworking for beginners", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, onTopic(m, c.text), c.text)
	}
}

func TestOnTopicWithoutFilterKeepsEverything(t *testing.T) {
	assert.True(t, onTopic(nil, "Woodworking for beginners"))
}
