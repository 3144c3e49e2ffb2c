//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/wind-station-map/internal/adapter/kafka"
	"github.com/couchcryptid/wind-station-map/internal/adapter/mapview"
	"github.com/couchcryptid/wind-station-map/internal/adapter/stationapi"
	"github.com/couchcryptid/wind-station-map/internal/config"
	"github.com/couchcryptid/wind-station-map/internal/domain"
	"github.com/couchcryptid/wind-station-map/internal/observability"
	"github.com/couchcryptid/wind-station-map/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMarkerTopic = "test-markers"

const stationsBody = `[
  {"name":"Tallinn","latitude":59.4,"longitude":24.7,"wind_speed":7,"wind_gust":0,"wind_direction":270,"observation_time":"2024-01-01T00:00Z"},
  {"name":"Ruhnu","latitude":57.8,"longitude":23.3,"wind_speed":16.2,"wind_gust":21.5,"wind_direction":0,"observation_time":"2024-01-01T00:00Z"}
]`

// publishedMarker holds a deserialized message read from the marker topic.
type publishedMarker struct {
	Marker  domain.Marker
	Key     string
	Headers map[string]string
}

func readMarker(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedMarker {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from marker topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var marker domain.Marker
	require.NoError(t, json.Unmarshal(msg.Value, &marker), "unmarshal marker message")

	return publishedMarker{Marker: marker, Key: string(msg.Key), Headers: headers}
}

// TestRenderPassPublishesMarkers wires the full pass (station API -> renderer
// -> map view + Kafka writer) and verifies every drawn marker reaches the topic.
func TestRenderPassPublishesMarkers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testMarkerTopic)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(stationsBody))
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		KafkaEnabled:     true,
		KafkaBrokers:     []string{broker},
		KafkaMarkerTopic: testMarkerTopic,
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewUnregisteredMetrics()
	client := stationapi.NewClient(upstream.URL, 10*time.Second, metrics, discardLogger())
	renderer := pipeline.NewRenderer(client, writer, discardLogger(), metrics)

	view := mapview.New(mapview.DefaultOptions())
	res, err := renderer.Render(ctx, view, view)
	require.NoError(t, err)
	require.Len(t, res.Markers, 2)
	assert.Len(t, view.Markers(), 2)
	assert.Empty(t, view.Notices())

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testMarkerTopic,
		GroupID:     fmt.Sprintf("test-markers-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := map[string]publishedMarker{}
	for len(received) < 2 {
		pm := readMarker(ctx, t, consumer)
		received[pm.Key] = pm
	}

	tallinn, ok := received["Tallinn"]
	require.True(t, ok, "expected Tallinn marker")
	assert.Equal(t, "medium", tallinn.Headers["severity"])
	_, err = time.Parse(time.RFC3339, tallinn.Headers["rendered_at"])
	assert.NoError(t, err, "rendered_at should be valid RFC3339")
	assert.InDelta(t, 90.0, tallinn.Marker.Rotation, 1e-9)
	assert.Equal(t, domain.LatLng{Lat: 59.4, Lng: 24.7}, tallinn.Marker.Position)
	assert.NotContains(t, tallinn.Marker.Popup.String(), "Gust")

	ruhnu, ok := received["Ruhnu"]
	require.True(t, ok, "expected Ruhnu marker")
	assert.Equal(t, "severe", ruhnu.Headers["severity"])
	assert.InDelta(t, 180.0, ruhnu.Marker.Rotation, 1e-9)
	assert.Contains(t, ruhnu.Marker.Popup.String(), "Gust: 21.5 m/s")
}

// TestFailedPassPublishesNothing verifies a failed fetch leaves the topic empty.
func TestFailedPassPublishesNothing(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testMarkerTopic)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaMarkerTopic: testMarkerTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewUnregisteredMetrics()
	client := stationapi.NewClient(upstream.URL, 10*time.Second, metrics, discardLogger())
	renderer := pipeline.NewRenderer(client, writer, discardLogger(), metrics)

	view := mapview.New(mapview.DefaultOptions())
	_, err := renderer.Render(ctx, view, view)
	require.Error(t, err)
	assert.Len(t, view.Notices(), 1)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testMarkerTopic,
		GroupID:     fmt.Sprintf("test-empty-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err = consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no message on marker topic")
}
