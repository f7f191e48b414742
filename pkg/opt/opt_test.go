package opt_test

import (
	"errors"
	"testing"

	// Packages
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	assert "github.com/stretchr/testify/assert"
)

func Test_opt_001(t *testing.T) {
	assert := assert.New(t)

	// Empty apply
	options, err := opt.Apply()
	assert.NoError(err)
	assert.False(options.Has(opt.SystemPromptKey))
	assert.Equal("", options.GetString(opt.SystemPromptKey))
	assert.Nil(options.GetStream())
}

func Test_opt_002(t *testing.T) {
	assert := assert.New(t)

	// String, uint and float values
	options, err := opt.Apply(
		opt.WithSystemPrompt("be brief"),
		opt.WithMaxTokens(512),
		opt.WithTemperature(0.7),
		opt.WithStopSequences("a", "b"),
	)
	assert.NoError(err)
	assert.Equal("be brief", options.GetString(opt.SystemPromptKey))
	assert.Equal(uint(512), options.GetUint(opt.MaxTokensKey))
	assert.Equal(0.7, options.GetFloat64(opt.TemperatureKey))
	assert.Equal([]string{"a", "b"}, options.GetStringArray(opt.StopSequencesKey))
}

func Test_opt_003(t *testing.T) {
	assert := assert.New(t)

	// Option validation errors
	_, err := opt.Apply(opt.WithTemperature(3))
	assert.Error(err)
	_, err = opt.Apply(opt.WithTopP(1.5))
	assert.Error(err)
	_, err = opt.Apply(opt.WithStopSequences())
	assert.Error(err)

	// Explicit error option
	boom := errors.New("boom")
	_, err = opt.Apply(opt.Error(boom))
	assert.ErrorIs(err, boom)
}

func Test_opt_004(t *testing.T) {
	assert := assert.New(t)

	// Structured values
	type payload struct{ Name string }
	options, err := opt.Apply(
		opt.AddAny(opt.ContentBlockKey, payload{Name: "one"}),
		opt.AddAny(opt.ContentBlockKey, payload{Name: "two"}),
	)
	assert.NoError(err)
	assert.True(options.Has(opt.ContentBlockKey))
	assert.Len(options.GetAll(opt.ContentBlockKey), 2)
	assert.Equal(payload{Name: "one"}, options.Get(opt.ContentBlockKey))
}

func Test_opt_005(t *testing.T) {
	assert := assert.New(t)

	// Streaming callback round-trip
	var got string
	options, err := opt.Apply(opt.WithStream(func(role, text string) {
		got = role + ":" + text
	}))
	assert.NoError(err)
	fn := options.GetStream()
	assert.NotNil(fn)
	fn("assistant", "hello")
	assert.Equal("assistant:hello", got)
}

func Test_opt_006(t *testing.T) {
	assert := assert.New(t)

	// Tool choice with a named tool
	options, err := opt.Apply(opt.WithToolChoice("tool", "get_weather"))
	assert.NoError(err)
	assert.Equal("tool", options.GetString(opt.ToolChoiceKey))
	assert.Equal("get_weather", options.GetString(opt.ToolChoiceNameKey))
}
