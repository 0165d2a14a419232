package rabbitmq_producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublisherConfigValidate(t *testing.T) {
	assert.NoError(t, PublisherConfig{}.Validate())
	assert.NoError(t, PublisherConfig{ExchangeName: "notifications", ExchangeType: "topic", DeclareExchangeIfMissing: true}.Validate())
	assert.NoError(t, PublisherConfig{ExchangeName: "notifications"}.Validate())
	assert.Error(t, PublisherConfig{ExchangeType: "topic", DeclareExchangeIfMissing: true}.Validate())
	assert.Error(t, PublisherConfig{ExchangeName: "notifications", DeclareExchangeIfMissing: true}.Validate())
}

func TestNewPublisherRequiresManager(t *testing.T) {
	_, err := NewPublisher(PublisherConfig{}, nil)
	assert.Error(t, err)
}
