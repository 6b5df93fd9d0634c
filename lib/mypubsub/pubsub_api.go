package mypubsub

import (
	"context"
)

//go:generate mockgen -source=pubsub_api.go -package mypubsub -destination pubsub_mock.go PubSub
type PubSub interface {
	Publish(c context.Context, topic string, data string) error
	CreateTopic(c context.Context, topic string) error
}

// New returns the gcloud implementation when a project is given and an in-memory one otherwise.
func New(c context.Context, project string) (PubSub, func(), error) {
	if project != "" {
		return newGcloudPubSub(c, project)
	}
	return NewFakePubSub(), func() {}, nil
}
