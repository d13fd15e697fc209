package SummarizeConversations

import (
	"fmt"
	"os"
	"strings"

	"slack-standup-summariser/Models"
)

type ThreadMessage = Models.ThreadMessage

// StandupInstruction asks for one consolidated daily standup report.
const StandupInstruction = `Collect these daily reports to a single daily report.
Please ignore messages that are not the report format.
Bold text: wrap your text with asterisks (*): *bold*.
Below is the output report format, replace yyyy-MM-dd with the current date, try to follow the format as much as possible, no more additional text.
Leave out section 3 entirely when nothing is blocked.

*Daily Standup Report on yyyy-MM-dd*
*1. What's done?*
• Task 1
• Task 2
*2. What's next?*
• Task 1
• Task 2
*3. What's blocked?*
• Issue 1
• Issue 2`

const reportEntrySeparator = "\n----------------\n"

type ThreadPolicy string

const (
	// ExcludeMention drops the last message (the mention itself) and the authors.
	ExcludeMention ThreadPolicy = "exclude-mention"
	// IncludeAll keeps every message, each prefixed with its author id.
	IncludeAll ThreadPolicy = "include-all"
)

// BuildThreadText concatenates thread messages in the order they were fetched.
func BuildThreadText(messages []ThreadMessage, policy ThreadPolicy) string {
	switch policy {
	case IncludeAll:
		lines := make([]string, 0, len(messages))
		for _, message := range messages {
			lines = append(lines, fmt.Sprintf("%s: %s", message.UserId, message.Text))
		}
		return strings.Join(lines, "\n")
	default:
		if len(messages) == 0 {
			return ""
		}
		texts := make([]string, 0, len(messages)-1)
		for _, message := range messages[:len(messages)-1] {
			texts = append(texts, message.Text)
		}
		return strings.Join(texts, reportEntrySeparator)
	}
}

// BuildPrompt is the single-message form used when the instruction is not
// configured as a system instruction.
func BuildPrompt(instruction, threadText string) string {
	return instruction + "\n\nReports:\n" + threadText
}

// LoadInstruction returns the contents of promptFile, or StandupInstruction
// when promptFile is empty.
func LoadInstruction(promptFile string) (string, error) {
	if promptFile == "" {
		return StandupInstruction, nil
	}
	promptContext, promptReadError := os.ReadFile(promptFile)
	if promptReadError != nil {
		return "", fmt.Errorf("read prompt file: %w", promptReadError)
	}
	instruction := strings.TrimSpace(string(promptContext))
	if instruction == "" {
		return "", fmt.Errorf("prompt file %s is empty", promptFile)
	}
	return instruction, nil
}
