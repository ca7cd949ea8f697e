package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestGetKeysSorted(t *testing.T) {
	m := map[string]int{"b": 2, "c": 3, "a": 1}
	assert.Equal(t, []string{"a", "b", "c"}, GetKeys(m))
}

func TestClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(127, Clamp(131, 0, 127))
	assert.Equal(0, Clamp(-3, 0, 127))
	assert.Equal(60, Clamp(60, 0, 127))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 1.5, Sum([]float64{0.25, 0.25, 1}))
}

func TestBinaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.dat")
	in := map[string]string{"id": "notation"}

	assert := assert.New(t)
	assert.Nil(WriteBinary(path, in))
	out, err := ReadBinary[map[string]string](path)
	assert.Nil(err)
	assert.Equal(in, out)

	_, err = os.Stat(path + ".tmp")
	assert.True(os.IsNotExist(err))
}

func TestReadBinaryMissingFile(t *testing.T) {
	_, err := ReadBinary[map[string]string](filepath.Join(t.TempDir(), "missing.dat"))
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
