package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("opcode 0x2a", From("opcode 0x%02x", 42))
	assert.Equal("line 3 'HLT' failed", From("line %d '%v' %v", 3, "HLT", "failed"))
	assert.NotNil(printer)
}
