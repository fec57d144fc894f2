package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_EmptyDatabaseURL(t *testing.T) {
	db, err := New("")
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "DATABASE_URL environment variable not set")
}

func TestNewID_UniqueAndSortable(t *testing.T) {
	a := newID()
	b := newID()

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}
