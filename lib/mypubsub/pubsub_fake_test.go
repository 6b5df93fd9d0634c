package mypubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakePubSub(t *testing.T) {
	c := context.Background()

	ps, cleanup, err := New(c, "")
	require.NoError(t, err)
	defer cleanup()

	err = ps.CreateTopic(c, "shopifyauth")
	require.NoError(t, err)

	err = ps.Publish(c, "shopifyauth", `{"shop":"shop1.myshopify.com"}`)
	require.NoError(t, err)

	fake, ok := ps.(*FakePubSub)
	require.True(t, ok)
	assert.Equal(t, []Message{{Topic: "shopifyauth", Data: `{"shop":"shop1.myshopify.com"}`}}, fake.Messages())
}
