package httpclient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAllWithLimit(t *testing.T) {
	data, err := ReadAllWithLimit(strings.NewReader("hello"), 10)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = ReadAllWithLimit(strings.NewReader("hello world"), 5)
	require.Error(t, err)
	assert.True(t, IsResponseTooLarge(err))

	data, err = ReadAllWithLimit(strings.NewReader("unbounded"), 0)
	require.NoError(t, err)
	assert.Equal(t, "unbounded", string(data))
}
