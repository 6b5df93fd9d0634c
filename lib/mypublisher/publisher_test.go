package mypublisher

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/shopauth/lib/myevents"
	"github.com/MarcGrol/shopauth/lib/mypubsub"
	"github.com/MarcGrol/shopauth/lib/mytime"
)

type shopVisited struct {
	Shop string `json:"shop"`
}

func (e shopVisited) GetEventTypeName() string {
	return "shop.visited"
}

func (e shopVisited) GetAggregateName() string {
	return e.Shop
}

func TestPublisher(t *testing.T) {
	t.Run("publish envelope", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		nower := mytime.NewMockNower(ctrl)
		fake := mypubsub.NewFakePubSub()
		sut := New(fake, nower)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		err := sut.Publish(context.Background(), "shopifyauth", shopVisited{Shop: "shop1.myshopify.com"})

		// then
		require.NoError(t, err)
		messages := fake.Messages()
		require.Len(t, messages, 1)
		assert.Equal(t, "shopifyauth", messages[0].Topic)

		envelope := myevents.EventEnvelope{}
		err = json.Unmarshal([]byte(messages[0].Data), &envelope)
		require.NoError(t, err)
		assert.NotEmpty(t, envelope.UID)
		assert.Equal(t, mytime.ExampleTime, envelope.CreatedAt)
		assert.Equal(t, "shop1.myshopify.com", envelope.AggregateUID)
		assert.Equal(t, "shop.visited", envelope.EventTypeName)
		assert.JSONEq(t, `{"shop":"shop1.myshopify.com"}`, envelope.EventPayload)
	})

	t.Run("same event same uid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		nower := mytime.NewMockNower(ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).Times(2)
		e := newEnveloper(nower)

		first, err := e.do("shopifyauth", shopVisited{Shop: "shop1.myshopify.com"})
		require.NoError(t, err)
		second, err := e.do("shopifyauth", shopVisited{Shop: "shop1.myshopify.com"})
		require.NoError(t, err)

		assert.Equal(t, first.UID, second.UID)
	})
}
