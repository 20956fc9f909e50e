package chat

import "gcn-backend/pkg/api"

// MaxMemoryMessages bounds the conversation window sent to the AI backend:
// the 10 most recent query/answer exchanges.
const MaxMemoryMessages = 20

// AppendExchange appends a user/assistant message pair and trims the window
// to the most recent MaxMemoryMessages entries.
func AppendExchange(memory []api.MemoryMessage, query, answer string) []api.MemoryMessage {
	memory = append(memory,
		api.MemoryMessage{Role: "user", Content: query},
		api.MemoryMessage{Role: "assistant", Content: answer},
	)
	if len(memory) > MaxMemoryMessages {
		memory = memory[len(memory)-MaxMemoryMessages:]
	}
	return memory
}
