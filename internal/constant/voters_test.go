package constant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisteredVoters(t *testing.T) {
	assert.Len(t, RegisteredVoters, 53)
	assert.Equal(t, 110548, RegisteredVoters[0])
	assert.Equal(t, 153213, RegisteredVoters[52])
	for i, v := range RegisteredVoters {
		assert.Positive(t, v, "district %d", i+1)
	}
}
