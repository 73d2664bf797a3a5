package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	ct "controlling_thermostat"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// MQTT publishes to a real broker via paho.
type MQTT struct {
	client      paho.Client
	stateTopic  string
	eventsTopic string
}

// NewMQTT connects to the broker and returns a publisher rooted at the given
// topic prefix (e.g. "home/thermostat").
func NewMQTT(broker, clientID, topicPrefix string) (*MQTT, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to %s: timeout", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", broker, err)
	}

	return &MQTT{
		client:      client,
		stateTopic:  topicPrefix + StateTopicSuffix,
		eventsTopic: topicPrefix + EventsTopicSuffix,
	}, nil
}

// PublishState sends the snapshot retained at QoS 0 so late subscribers see
// the latest state immediately.
func (m *MQTT) PublishState(state ct.ThermostatState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return m.publish(m.stateTopic, 0, true, payload)
}

// PublishEvent sends a decision/error event at QoS 1.
func (m *MQTT) PublishEvent(event ct.ThermostatEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return m.publish(m.eventsTopic, 1, false, payload)
}

func (m *MQTT) publish(topic string, qos byte, retained bool, payload []byte) error {
	token := m.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (m *MQTT) Close() error {
	m.client.Disconnect(1000) // milliseconds to flush in-flight messages
	return nil
}
