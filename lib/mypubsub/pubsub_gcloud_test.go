package mypubsub

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	grpcCodes "google.golang.org/grpc/codes"
	grpcStatus "google.golang.org/grpc/status"
)

func TestIsAlreadyExists(t *testing.T) {
	assert.True(t, isAlreadyExists(grpcStatus.Error(grpcCodes.AlreadyExists, "topic exists")))
	assert.False(t, isAlreadyExists(grpcStatus.Error(grpcCodes.PermissionDenied, "no access")))
	assert.False(t, isAlreadyExists(errors.New("boom")))
	assert.False(t, isAlreadyExists(fmt.Errorf("wrapped: %w", errors.New("boom"))))
}
