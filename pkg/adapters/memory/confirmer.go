package memory

import "sync"

// Confirmer implements ports.Confirmer with a scripted answer.
// It records every message it was asked.
type Confirmer struct {
	mu      sync.Mutex
	answer  bool
	prompts []string
}

// NewConfirmer creates a confirmer answering answer until Answer changes it.
func NewConfirmer(answer bool) *Confirmer {
	return &Confirmer{answer: answer}
}

// Answer sets the reply given to the next prompts.
func (c *Confirmer) Answer(answer bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answer = answer
}

// Confirm records message and returns the scripted answer.
func (c *Confirmer) Confirm(message string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, message)
	return c.answer
}

// Prompts returns the messages asked so far.
func (c *Confirmer) Prompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prompts...)
}
