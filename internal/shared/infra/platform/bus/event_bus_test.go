package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type keyed string

func (k keyed) PartitionKey() string { return string(k) }

func TestKeyOf(t *testing.T) {
	assert.Equal(t, "IRN1", KeyOf(keyed("IRN1")))
	assert.Empty(t, KeyOf(map[string]string{"irn": "IRN1"}))
	assert.Empty(t, KeyOf(nil))
}
