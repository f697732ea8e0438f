package bootstrap

import (
	"log/slog"

	"github.com/aradsms/contactbook/internal/contactbook/app"
	"github.com/aradsms/contactbook/internal/platform/config"
	"github.com/aradsms/contactbook/internal/platform/messagebroker"
)

// Events connects the change-event publisher when NATS_URL is set and returns
// the application options that enable it. The returned close func is always
// safe to call.
func Events(cfg *config.Config, clientName string, logger *slog.Logger) ([]app.Option, func(), error) {
	if cfg.NATSURL == "" {
		logger.Debug("NATS URL not configured, contact events disabled")
		return nil, func() {}, nil
	}
	client, err := messagebroker.NewNatsClient(cfg.NATSURL, clientName, logger)
	if err != nil {
		return nil, func() {}, err
	}
	logger.Info("NATS client connected", "url", client.Conn.ConnectedUrlRedacted())
	return []app.Option{app.WithEventPublisher(client)}, client.Close, nil
}
