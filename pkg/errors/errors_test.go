package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessageVerbatimPolicy(t *testing.T) {
	business := New(CodeBusiness, "insufficient stock for Paracetamol 500mg")
	assert.Equal(t, "insufficient stock for Paracetamol 500mg", UserMessage(business))

	unauthorized := New(CodeUnauthorized, "token signature mismatch")
	assert.Equal(t, "please login to continue", UserMessage(unauthorized))

	network := Wrap(CodeNetwork, fmt.Errorf("dial tcp: connection refused"), "request failed")
	assert.Equal(t, "something went wrong, please try again", UserMessage(network))
}

func TestUserMessageUntyped(t *testing.T) {
	assert.Equal(t, "something went wrong, please try again", UserMessage(fmt.Errorf("boom")))
}

func TestAsUnwrapsChain(t *testing.T) {
	inner := New(CodeUnauthorized, "session expired")
	wrapped := fmt.Errorf("loading cart: %w", inner)

	typed := As(wrapped)
	assert.NotNil(t, typed)
	assert.Equal(t, CodeUnauthorized, typed.Code())
	assert.True(t, IsUnauthorized(wrapped))
	assert.False(t, IsUnauthorized(fmt.Errorf("plain")))
}

func TestMetadataForUnknownCode(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	assert.Equal(t, MetadataFor(CodeNetwork), meta)
}

func TestClearsSessionFlag(t *testing.T) {
	assert.True(t, MetadataFor(CodeUnauthorized).ClearsSession)
	assert.False(t, MetadataFor(CodeBusiness).ClearsSession)
}
