package messagebroker

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNatsClient_InvalidURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := NewNatsClient("not a url ://", "contactbook-test", logger)

	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestPublish_WithoutConnection(t *testing.T) {
	var client *NatsClient

	err := client.Publish(context.Background(), "contactbook.contact.created", []byte("{}"))

	assert.EqualError(t, err, "nats client not connected")
	assert.NotPanics(t, client.Close)
}
