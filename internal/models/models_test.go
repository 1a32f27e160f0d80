package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeforeCreateAssignsIDs(t *testing.T) {
	post := &Post{Title: "Edit my thesis"}
	require.NoError(t, post.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, post.ID)

	bid := &Bid{Price: 450}
	require.NoError(t, bid.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, bid.ID)

	project := &Project{}
	require.NoError(t, project.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, project.ID)

	payment := &Payment{Amount: 450}
	require.NoError(t, payment.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, payment.ID)
}

func TestBeforeCreateKeepsExistingID(t *testing.T) {
	id := uuid.New()
	customer := &Customer{ID: id, Email: "a@b.c"}
	require.NoError(t, customer.BeforeCreate(nil))
	assert.Equal(t, id, customer.ID)
}
