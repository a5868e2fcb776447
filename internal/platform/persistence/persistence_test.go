package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	authorityStore "medsim/internal/authority/store"
	"medsim/internal/platform/logger"
	"medsim/internal/platform/metrics"
	"medsim/internal/platform/persistence/memory"
	id "medsim/pkg/domain"
	"medsim/pkg/platform/ledger"
	"medsim/pkg/platform/sentinel"
)

type note struct {
	Author string   `json:"author"`
	Tags   []string `json:"tags"`
}

func (n *note) Clone() *note {
	c := *n
	c.Tags = append([]string(nil), n.Tags...)
	return &c
}

type brokenBackend struct{ *memory.Backend }

func (brokenBackend) Save(context.Context, string, []byte) error { return errors.New("disk full") }

type SnapshotterSuite struct {
	suite.Suite
	ctx     context.Context
	backend *memory.Backend
	metrics *metrics.Metrics
}

func TestSnapshotterSuite(t *testing.T) {
	suite.Run(t, new(SnapshotterSuite))
}

func (s *SnapshotterSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = memory.New()
	s.metrics = metrics.New(prometheus.NewRegistry())
}

func (s *SnapshotterSuite) snapshotter(b Backend) *Snapshotter {
	return NewSnapshotter(b, WithMetrics(s.metrics), WithLogger(logger.Discard()))
}

func (s *SnapshotterSuite) TestLedgerRoundTrip() {
	first := ledger.New[*note]()
	s.Require().NoError(Bind(s.ctx, s.snapshotter(s.backend), BucketScenarios, first))
	s.Require().NoError(first.Insert(s.ctx, "n1", &note{Author: "dr-a", Tags: []string{"EM"}}))

	restored := ledger.New[*note]()
	s.Require().NoError(Bind(s.ctx, s.snapshotter(s.backend), BucketScenarios, restored))

	got, err := restored.Find("n1")
	s.Require().NoError(err)
	s.Equal("dr-a", got.Author)
	s.Equal([]string{"EM"}, got.Tags)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.SnapshotWrites.WithLabelValues(BucketScenarios, "ok")))
}

func (s *SnapshotterSuite) TestFailedWriteLeavesLedgerUnchanged() {
	l := ledger.New[*note]()
	s.Require().NoError(Bind(s.ctx, s.snapshotter(brokenBackend{s.backend}), BucketSessions, l))

	err := l.Insert(s.ctx, "n1", &note{Author: "dr-a"})
	s.ErrorContains(err, "disk full")
	s.False(l.Contains("n1"))
	s.Equal(1.0, promtest.ToFloat64(s.metrics.SnapshotWrites.WithLabelValues(BucketSessions, "error")))
}

func (s *SnapshotterSuite) TestAuthorityValue() {
	store := authorityStore.New("board")
	hook, err := BindValue(s.ctx, s.snapshotter(s.backend), BucketAuthority, store.Restore)
	s.Require().NoError(err)
	store.SetCommitHook(hook)

	_, err = store.Transfer(s.ctx, func(id.Identity) error { return nil }, "college")
	s.Require().NoError(err)

	restarted := authorityStore.New("board")
	_, err = BindValue(s.ctx, s.snapshotter(s.backend), BucketAuthority, restarted.Restore)
	s.Require().NoError(err)
	s.Equal(id.Identity("college"), restarted.Current())
}

func (s *SnapshotterSuite) TestCorruptBucket() {
	s.Require().NoError(s.backend.Save(s.ctx, BucketInstructors, []byte("{not json")))
	err := Bind(s.ctx, s.snapshotter(s.backend), BucketInstructors, ledger.New[*note]())
	s.ErrorContains(err, "decode instructors")
}

func (s *SnapshotterSuite) TestExport() {
	s.Require().NoError(s.backend.Save(s.ctx, BucketSimulators, []byte(`{"sim-1":{}}`)))

	out, err := s.snapshotter(s.backend).Export(s.ctx)
	s.Require().NoError(err)
	s.Len(out, 1)
	s.JSONEq(`{"sim-1":{}}`, string(out[BucketSimulators]))
}

func (s *SnapshotterSuite) TestDisabled() {
	snap := NewSnapshotter(nil)
	s.False(snap.Enabled())

	l := ledger.New[*note]()
	s.Require().NoError(Bind(s.ctx, snap, BucketScenarios, l))
	s.Require().NoError(l.Insert(s.ctx, "n1", &note{}))

	hook, err := BindValue(s.ctx, snap, BucketAuthority, func(id.Identity) {})
	s.NoError(err)
	s.Nil(hook)
	s.NoError(snap.Close())

	_, err = s.backend.Load(s.ctx, BucketScenarios)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
