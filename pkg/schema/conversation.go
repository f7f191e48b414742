package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Conversation is an ordered sequence of messages exchanged with a model
type Conversation []*Message

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Append adds a message to the conversation
func (c *Conversation) Append(message Message) {
	*c = append(*c, &message)
}

// AppendWithOutput adds a message to the conversation, attributing input
// tokens to the preceding message and output tokens to the appended one
func (c *Conversation) AppendWithOutput(message Message, input, output uint) {
	// Attribute any unaccounted input tokens to the last message
	tokens := uint(0)
	for _, msg := range *c {
		tokens += msg.Tokens
	}
	if n := len(*c); n > 0 && input > tokens {
		(*c)[n-1].Tokens = input - tokens
	}

	// Set the output tokens and append
	message.Tokens = output
	*c = append(*c, &message)
}

// Tokens returns the total number of tokens in the conversation
func (c Conversation) Tokens() uint {
	total := uint(0)
	for _, msg := range c {
		total += msg.Tokens
	}
	return total
}

// Last returns the most recent message, or nil if the conversation is empty
func (c Conversation) Last() *Message {
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1]
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c Conversation) String() string {
	return stringify(c)
}
