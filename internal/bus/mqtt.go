package bus

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/markusressel/yaw2go/internal/configuration"
	"github.com/markusressel/yaw2go/internal/ui"
)

type mqttBus struct {
	client  mqtt.Client
	qos     byte
	timeout time.Duration
}

// NewMqttBus connects to the configured MQTT broker
func NewMqttBus(config configuration.BusConfig) (Bus, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(config.Broker).
		SetClientID(config.ClientId).
		SetConnectTimeout(config.Timeout).
		SetAutoReconnect(false).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			ui.Error("Lost connection to MQTT broker %s: %v", config.Broker, err)
		})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(config.Timeout) {
		return nil, fmt.Errorf("connecting to %s: timeout after %s: %w", config.Broker, config.Timeout, ErrUnavailable)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("connecting to %s: %w", config.Broker, token.Error())
	}
	ui.Info("Connected to MQTT broker at %s", config.Broker)

	return &mqttBus{
		client:  client,
		qos:     config.Qos,
		timeout: config.Timeout,
	}, nil
}

func (b *mqttBus) Publish(topic string, value any) error {
	if !b.client.IsConnectionOpen() {
		return fmt.Errorf("publishing to %s: %w", topic, ErrUnavailable)
	}

	payload, err := encode(value)
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}

	token := b.client.Publish(topic, b.qos, false, payload)
	if !token.WaitTimeout(b.timeout) {
		return fmt.Errorf("publishing to %s: timeout after %s: %w", topic, b.timeout, ErrUnavailable)
	}
	if token.Error() != nil {
		return fmt.Errorf("publishing to %s: %w", topic, token.Error())
	}
	return nil
}

func (b *mqttBus) Subscribe(topic string, handler Handler) error {
	token := b.client.Subscribe(topic, b.qos, func(_ mqtt.Client, msg mqtt.Message) {
		handler(msg.Payload())
	})
	if !token.WaitTimeout(b.timeout) {
		return fmt.Errorf("subscribing to %s: timeout after %s: %w", topic, b.timeout, ErrUnavailable)
	}
	if token.Error() != nil {
		return fmt.Errorf("subscribing to %s: %w", topic, token.Error())
	}
	ui.Debug("Subscribed to %s", topic)
	return nil
}

func (b *mqttBus) Close() {
	b.client.Disconnect(250)
}
