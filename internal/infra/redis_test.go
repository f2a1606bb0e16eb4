package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedis_SinURL(t *testing.T) {
	rdb, err := NewRedis("")
	assert.NoError(t, err)
	assert.Nil(t, rdb)

	_, err = NewRedis("://bad")
	assert.Error(t, err)
}
