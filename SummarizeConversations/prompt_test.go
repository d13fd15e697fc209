package SummarizeConversations

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standupThread() []ThreadMessage {
	return []ThreadMessage{
		{UserId: "U1", Text: "standup: done X", Timestamp: "123.45"},
		{UserId: "U2", Text: "standup: next Y", Timestamp: "123.46"},
		{UserId: "U3", Text: "<@UBOT> summarize please", Timestamp: "123.47"},
	}
}

func TestBuildThreadTextExcludeMention(t *testing.T) {
	text := BuildThreadText(standupThread(), ExcludeMention)
	assert.Equal(t, "standup: done X\n----------------\nstandup: next Y", text)
}

func TestBuildThreadTextIncludeAll(t *testing.T) {
	text := BuildThreadText(standupThread(), IncludeAll)
	assert.Equal(t, "U1: standup: done X\nU2: standup: next Y\nU3: <@UBOT> summarize please", text)
}

func TestBuildThreadTextKeepsFetchOrder(t *testing.T) {
	var messages []ThreadMessage
	for _, text := range []string{"c", "a", "d", "b", "mention"} {
		messages = append(messages, ThreadMessage{UserId: "U1", Text: text})
	}

	assert.Equal(t, []string{"c", "a", "d", "b"},
		strings.Split(BuildThreadText(messages, ExcludeMention), reportEntrySeparator))
	assert.Len(t, strings.Split(BuildThreadText(messages, IncludeAll), "\n"), 5)
}

func TestBuildThreadTextShortThreads(t *testing.T) {
	assert.Empty(t, BuildThreadText(nil, ExcludeMention))
	assert.Empty(t, BuildThreadText(nil, IncludeAll))

	onlyMention := []ThreadMessage{{UserId: "U1", Text: "<@UBOT>"}}
	assert.Empty(t, BuildThreadText(onlyMention, ExcludeMention))
	assert.Equal(t, "U1: <@UBOT>", BuildThreadText(onlyMention, IncludeAll))
}

func TestStandupInstructionTemplate(t *testing.T) {
	for _, fragment := range []string{
		"Daily Standup Report on yyyy-MM-dd",
		"What's done?",
		"What's next?",
		"What's blocked?",
		"*bold*",
		"ignore messages that are not the report format",
		"when nothing is blocked",
	} {
		assert.Contains(t, StandupInstruction, fragment)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Summarize.", "standup: done X")
	assert.Equal(t, "Summarize.\n\nReports:\nstandup: done X", prompt)
}

func TestLoadInstruction(t *testing.T) {
	instruction, err := LoadInstruction("")
	require.NoError(t, err)
	assert.Equal(t, StandupInstruction, instruction)

	promptFile := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(promptFile, []byte("  Weekly report please.\n"), 0644))
	instruction, err = LoadInstruction(promptFile)
	require.NoError(t, err)
	assert.Equal(t, "Weekly report please.", instruction)

	emptyFile := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(emptyFile, []byte("\n"), 0644))
	_, err = LoadInstruction(emptyFile)
	assert.Error(t, err)

	_, err = LoadInstruction(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
