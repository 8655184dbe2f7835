package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dendrascience/dupfinder/dedupe"
	"github.com/stretchr/testify/assert"
)

func TestGroupColor(t *testing.T) {
	fps := []string{
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		"2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae",
		"",
	}
	for _, fp := range fps {
		c := groupColor(fp)
		assert.GreaterOrEqual(t, c, 16)
		assert.LessOrEqual(t, c, 231)
		assert.Equal(t, c, groupColor(fp), "colour must be stable")
	}
}

func TestPrinter_Groups(t *testing.T) {
	fp := strings.Repeat("ab", 32)
	groups := []dedupe.OrganizedGroup{{
		Fingerprint: fp,
		Group:       dedupe.DuplicateGroup{Files: []string{"/r/a", "/r/b"}},
		Folder:      "/r/duplicates/" + fp + "_a",
	}}

	var buf bytes.Buffer
	newPrinter(&buf, false).groups(groups)
	assert.Equal(t, "  [1] abababababab  2 files -> /r/duplicates/"+fp+"_a\n", buf.String())

	buf.Reset()
	p := &printer{out: &buf, color: true}
	p.groups(groups)
	assert.Contains(t, buf.String(), "\x1b[38;5;")
	assert.Contains(t, buf.String(), "\x1b[0m")
}

func TestNewPrinter_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, newPrinter(&buf, false).color)
	assert.False(t, isTerminal(&buf))
}
