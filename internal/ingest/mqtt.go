// Package ingest subscribes to the device-fleet MQTT topic and persists
// incoming ECG captures. HTTP POST /readings remains the primary write
// path; this listener supplements it for sensors that publish directly.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"strokesense/internal/models"
	"strokesense/internal/repository"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const readingTopic = "ecg/readings/+"

type readingPayload struct {
	Samples []float64 `json:"samples"`
}

type Listener struct {
	client   mqtt.Client
	readings repository.ReadingRepository
}

// NewListener connects to the broker and subscribes to the ECG reading
// topic. The user identifier is the last topic segment.
func NewListener(broker string, readings repository.ReadingRepository) (*Listener, error) {
	l := &Listener{readings: readings}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(fmt.Sprintf("strokesense-ingest-%d", time.Now().Unix()))
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(client mqtt.Client) {
		token := client.Subscribe(readingTopic, 1, l.handleMessage)
		token.Wait()
		if token.Error() != nil {
			log.Printf("Failed to subscribe to %s: %v", readingTopic, token.Error())
			return
		}
		log.Printf("Subscribed to MQTT topic %s", readingTopic)
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		log.Printf("MQTT connection lost: %v", err)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	l.client = client
	return l, nil
}

func (l *Listener) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	parts := strings.Split(msg.Topic(), "/")
	userID := parts[len(parts)-1]
	if userID == "" {
		log.Printf("Dropping reading with empty user id on topic %s", msg.Topic())
		return
	}

	var payload readingPayload
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		log.Printf("Dropping malformed reading for user %s: %v", userID, err)
		return
	}
	if len(payload.Samples) == 0 {
		log.Printf("Dropping empty reading for user %s", userID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reading := &models.ECGReading{
		UserID:  userID,
		Samples: payload.Samples,
	}
	if err := l.readings.SaveReading(ctx, reading); err != nil {
		log.Printf("Failed to persist MQTT reading for user %s: %v", userID, err)
	}
}

func (l *Listener) Close() {
	l.client.Disconnect(250)
}
