package util

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// GetKeys returns the keys of m in ascending order.
func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Max[A constraints.Ordered](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}

func Clamp[A constraints.Ordered](num, lo, hi A) A {
	return Max(lo, Min(num, hi))
}

func Sum[A constraints.Integer | constraints.Float](nums []A) A {
	var total A
	for _, v := range nums {
		total += v
	}
	return total
}

// WriteBinary gob-encodes data into filename, creating parent directories.
func WriteBinary(filename string, data any) error {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(data); err != nil {
		return errors.Wrap(err, "could not encode binary")
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0777); err != nil {
		return errors.Wrapf(err, "could not create dir for %v", filename)
	}
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0666); err != nil {
		return errors.Wrapf(err, "write failed for file %v", filename)
	}
	return errors.Wrap(os.Rename(tmp, filename), "could not replace binary")
}

// ReadBinary decodes a file written by WriteBinary.
func ReadBinary[A any](path string) (A, error) {
	var data A
	f, err := os.Open(path)
	if err != nil {
		return data, errors.Wrap(err, "could not load binary file")
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(&data); err != nil {
		return data, errors.Wrap(err, "could not decode binary file")
	}
	return data, nil
}
