// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errNotFound = errors.New("not found")

type mem map[string]string

func (m mem) Get(k []byte) ([]byte, error) {
	if v, ok := m[string(k)]; ok {
		return []byte(v), nil
	}
	return nil, errNotFound
}

func (m mem) Has(k []byte) (bool, error) {
	_, ok := m[string(k)]
	return ok, nil
}

func (m mem) Put(k, v []byte) error {
	m[string(k)] = string(v)
	return nil
}

func (m mem) Delete(k []byte) error {
	delete(m, string(k))
	return nil
}

func (m mem) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

func TestBucketGetter(t *testing.T) {
	m := mem{"a1": "v1", "a2": "v2", "m1": "meta"}

	tests := []struct {
		b    Bucket
		key  string
		want string
		has  bool
	}{
		{Bucket(""), "a1", "v1", true},
		{Bucket("a"), "1", "v1", true},
		{Bucket("a"), "2", "v2", true},
		{Bucket("a"), "a1", "", false},
		{Bucket("m"), "1", "meta", true},
		{Bucket("a1"), "", "v1", true},
	}
	for _, tt := range tests {
		getter := tt.b.NewGetter(m)
		got, err := getter.Get([]byte(tt.key))
		if tt.has {
			assert.NoError(t, err)
		} else {
			assert.True(t, getter.IsNotFound(err))
		}
		assert.Equal(t, tt.want, string(got))

		has, err := getter.Has([]byte(tt.key))
		assert.NoError(t, err)
		assert.Equal(t, tt.has, has)
	}
}

func TestBucketPutter(t *testing.T) {
	m := mem{}
	p := Bucket("a").NewPutter(m)

	assert.NoError(t, p.Put([]byte("1"), []byte("v1")))
	assert.Equal(t, mem{"a1": "v1"}, m)

	assert.NoError(t, p.Delete([]byte("1")))
	assert.Empty(t, m)
}
