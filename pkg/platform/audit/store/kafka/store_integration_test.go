//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "medsim/pkg/platform/audit"
	"medsim/pkg/testutil/containers"
)

func TestStore_AppendProducesEvent(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	store, err := New([]string{rp.Broker}, "medsim.audit")
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.EnsureTopic(ctx, 1, 1))
	require.NoError(t, store.EnsureTopic(ctx, 1, 1), "second call tolerates an existing topic")

	event := audit.Event{
		Category:  audit.CategoryOperations,
		Timestamp: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
		Actor:     "owner-1",
		Registry:  "simulator",
		Action:    string(audit.EventSimulatorRegistered),
		Key:       "sim-1",
		Outcome:   audit.OutcomeSuccess,
	}
	require.NoError(t, store.Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Broker),
		kgo.ConsumeTopics("medsim.audit"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())
	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, "simulator/sim-1", string(records[0].Key))

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, event, got)
}
