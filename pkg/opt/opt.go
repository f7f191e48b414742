package opt

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// A generic option type, which can set options on a client or request
type Opt func(*Options) error

// StreamFn is a callback for streaming responses, called with the role
// ("assistant", "thinking") and a chunk of text
type StreamFn func(role, text string)

// Options is the set of applied options. String-typed values are stored
// as url.Values; structured values (content blocks, toolkits, callbacks)
// are stored separately.
type Options struct {
	url.Values
	values map[string][]any
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Option keys shared between providers
const (
	ContentBlockKey   = "content_block"
	LimitKey          = "limit"
	MaxTokensKey      = "max_tokens"
	StopSequencesKey  = "stop_sequences"
	StreamKey         = "stream"
	SystemPromptKey   = "system"
	TemperatureKey    = "temperature"
	ToolChoiceKey     = "tool_choice"
	ToolChoiceNameKey = "tool_choice_name"
	ToolkitKey        = "toolkit"
	TopKKey           = "top_k"
	TopPKey           = "top_p"
	UserIdKey         = "user_id"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Apply returns the set of applied options
func Apply(o ...Opt) (Options, error) {
	options := Options{
		Values: make(url.Values),
		values: make(map[string][]any),
	}
	for _, opt := range o {
		if err := opt(&options); err != nil {
			return Options{}, err
		}
	}
	return options, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Has returns true if the key has been set
func (o Options) Has(key string) bool {
	if _, ok := o.Values[key]; ok {
		return true
	}
	_, ok := o.values[key]
	return ok
}

// GetString returns the trimmed value for key, or empty string if not set
func (o Options) GetString(key string) string {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// GetStringArray returns all values for key, each trimmed
func (o Options) GetStringArray(key string) []string {
	values, ok := o.Values[key]
	if !ok {
		return nil
	}
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = strings.TrimSpace(v)
	}
	return result
}

// GetBool returns true if key is present, false if absent
func (o Options) GetBool(key string) bool {
	return o.Has(key)
}

// GetFloat64 returns the float64 value for key, or 0 if not set or invalid
func (o Options) GetFloat64(key string) float64 {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64); err == nil {
			return v
		}
	}
	return 0
}

// GetUint returns the uint value for key, or 0 if not set or invalid
func (o Options) GetUint(key string) uint {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseUint(strings.TrimSpace(values[0]), 10, 64); err == nil {
			return uint(v)
		}
	}
	return 0
}

// Get returns the first structured value for key, or nil if not set
func (o Options) Get(key string) any {
	if values, ok := o.values[key]; ok && len(values) > 0 {
		return values[0]
	}
	return nil
}

// GetAll returns all structured values for key
func (o Options) GetAll(key string) []any {
	return o.values[key]
}

// GetStream returns the streaming callback, or nil if not set
func (o Options) GetStream() StreamFn {
	if fn, ok := o.Get(StreamKey).(StreamFn); ok {
		return fn
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// Error returns an option that always returns an error
func Error(err error) Opt {
	return func(o *Options) error {
		return err
	}
}

// WithOpts combines multiple options into a single option
func WithOpts(options ...Opt) Opt {
	return func(o *Options) error {
		for _, opt := range options {
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// SetString replaces the value for a key
func SetString(key string, value string) Opt {
	return func(o *Options) error {
		o.Values.Set(key, value)
		return nil
	}
}

// AddString appends one or more values for a key
func AddString(key string, value ...string) Opt {
	return func(o *Options) error {
		for _, v := range value {
			o.Values.Add(key, v)
		}
		return nil
	}
}

// SetUint replaces the value for a key
func SetUint(key string, value uint) Opt {
	return func(o *Options) error {
		o.Values.Set(key, strconv.FormatUint(uint64(value), 10))
		return nil
	}
}

// SetFloat64 replaces the value for a key
func SetFloat64(key string, value float64) Opt {
	return func(o *Options) error {
		o.Values.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
		return nil
	}
}

// SetAny replaces the structured value for a key
func SetAny(key string, value any) Opt {
	return func(o *Options) error {
		o.values[key] = []any{value}
		return nil
	}
}

// AddAny appends a structured value for a key
func AddAny(key string, value any) Opt {
	return func(o *Options) error {
		o.values[key] = append(o.values[key], value)
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// REQUEST OPTIONS

// WithStream sets a callback for streaming responses
func WithStream(fn StreamFn) Opt {
	if fn == nil {
		return Error(fmt.Errorf("stream callback is required"))
	}
	return SetAny(StreamKey, fn)
}

// WithSystemPrompt sets the system prompt for the request
func WithSystemPrompt(value string) Opt {
	return SetString(SystemPromptKey, value)
}

// WithTemperature sets the sampling temperature (0.0 to 2.0)
func WithTemperature(value float64) Opt {
	if value < 0 || value > 2 {
		return Error(fmt.Errorf("temperature must be between 0.0 and 2.0"))
	}
	return SetFloat64(TemperatureKey, value)
}

// WithMaxTokens sets the maximum number of tokens to generate (minimum 1)
func WithMaxTokens(value uint) Opt {
	if value < 1 {
		return Error(fmt.Errorf("max_tokens must be at least 1"))
	}
	return SetUint(MaxTokensKey, value)
}

// WithTopK sets the top K sampling parameter (minimum 1)
func WithTopK(value uint) Opt {
	if value < 1 {
		return Error(fmt.Errorf("top_k must be at least 1"))
	}
	return SetUint(TopKKey, value)
}

// WithTopP sets the nucleus sampling parameter (0.0 to 1.0)
func WithTopP(value float64) Opt {
	if value < 0 || value > 1 {
		return Error(fmt.Errorf("top_p must be between 0.0 and 1.0"))
	}
	return SetFloat64(TopPKey, value)
}

// WithStopSequences sets custom stop sequences for the request
func WithStopSequences(values ...string) Opt {
	if len(values) == 0 {
		return Error(fmt.Errorf("at least one stop sequence is required"))
	}
	return AddString(StopSequencesKey, values...)
}

// WithToolChoice sets how the model selects tools ("auto", "any", "none",
// or "tool" with a specific tool name)
func WithToolChoice(choice string, name ...string) Opt {
	return func(o *Options) error {
		o.Values.Set(ToolChoiceKey, choice)
		if len(name) > 0 {
			o.Values.Set(ToolChoiceNameKey, name[0])
		}
		return nil
	}
}

// WithUser sets the end-user identifier for the request
func WithUser(value string) Opt {
	return SetString(UserIdKey, value)
}

// WithLimit sets the page size for list requests
func WithLimit(value uint) Opt {
	return SetUint(LimitKey, value)
}
