package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "ABC 123", NormalizeText("  ＡＢＣ １２３\u0000 "))
	assert.Equal(t, "line\nnext", NormalizeText("line\nnext"))
}

func TestTokenize(t *testing.T) {
	got := Tokenize(`The "Policy", (Section 4.2); risk/impact!`)
	assert.Equal(t, []string{"the", "policy", "section", "4.2", "risk", "impact"}, got)
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("The"))
	assert.False(t, IsStopWord("policy"))
}
