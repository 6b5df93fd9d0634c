package mypubsub

import (
	"context"
	"sync"
)

type Message struct {
	Topic string
	Data  string
}

type FakePubSub struct {
	sync.Mutex
	topics   map[string]bool
	messages []Message
}

func NewFakePubSub() *FakePubSub {
	return &FakePubSub{
		topics: map[string]bool{},
	}
}

func (ps *FakePubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.topics[topic] = true
	return nil
}

func (ps *FakePubSub) Publish(c context.Context, topic string, data string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.messages = append(ps.messages, Message{Topic: topic, Data: data})
	return nil
}

func (ps *FakePubSub) Messages() []Message {
	ps.Lock()
	defer ps.Unlock()

	return append([]Message{}, ps.messages...)
}
