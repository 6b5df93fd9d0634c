package mypubsub

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/pubsub"
	grpcCodes "google.golang.org/grpc/codes"
	grpcStatus "google.golang.org/grpc/status"
)

type gcloudPubSub struct {
	client *pubsub.Client
	sync.Mutex
	topics map[string]*pubsub.Topic
}

func newGcloudPubSub(c context.Context, project string) (*gcloudPubSub, func(), error) {
	client, err := pubsub.NewClient(c, project)
	if err != nil {
		return nil, func() {}, fmt.Errorf("error creating pubsub-client: %w", err)
	}
	return &gcloudPubSub{
			client: client,
			topics: map[string]*pubsub.Topic{},
		}, func() {
			_ = client.Close()
		}, nil
}

func (ps *gcloudPubSub) CreateTopic(c context.Context, topicName string) error {
	topic, err := ps.client.CreateTopic(c, topicName)
	if err != nil {
		if !isAlreadyExists(err) {
			return fmt.Errorf("error creating topic %s: %w", topicName, err)
		}
		topic = ps.client.Topic(topicName)
	}

	ps.Lock()
	ps.topics[topicName] = topic
	ps.Unlock()

	return nil
}

func isAlreadyExists(err error) bool {
	return grpcStatus.Code(err) == grpcCodes.AlreadyExists
}

func (ps *gcloudPubSub) topic(topicName string) *pubsub.Topic {
	ps.Lock()
	defer ps.Unlock()

	topic, found := ps.topics[topicName]
	if !found {
		topic = ps.client.Topic(topicName)
		ps.topics[topicName] = topic
	}
	return topic
}

func (ps *gcloudPubSub) Publish(c context.Context, topicName string, data string) error {
	_, err := ps.topic(topicName).Publish(c, &pubsub.Message{Data: []byte(data)}).Get(c)
	if err != nil {
		return fmt.Errorf("error publishing event on topic %s: %w", topicName, err)
	}

	return nil
}
