package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsUUID(t *testing.T) {
	v := New()
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, v)
	assert.NotEqual(t, v, New())
}

func TestRequestIDShape(t *testing.T) {
	v := RequestID()
	assert.Regexp(t, `^[0-9a-f]{12}$`, v)
	assert.NotEqual(t, v, RequestID())
}
