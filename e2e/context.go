// Package e2e runs the feature files under features/ against a medsim API
// served over a real listener.
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"medsim/internal/app"
	jwttoken "medsim/internal/jwt_token"
	"medsim/internal/platform/logger"
	"medsim/internal/platform/metrics"
	httptransport "medsim/internal/transport/http"
	id "medsim/pkg/domain"
	"medsim/pkg/platform/audit/publisher"
	"medsim/pkg/platform/audit/store/memory"
	"medsim/pkg/testutil"
)

const signingKey = "e2e-signing-key"

// TestContext holds one scenario's server, caller and last response.
type TestContext struct {
	server *httptest.Server
	client *http.Client
	jwt    *jwttoken.JWTService
	clock  *testutil.Clock
	events *memory.InMemoryStore

	caller       string
	lastStatus   int
	lastBody     []byte
	lastResponse map[string]any
}

// Start boots a fresh registry with authority as the certification authority.
func (tc *TestContext) Start(authority string) error {
	tc.Stop()
	tc.clock = testutil.NewClock(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC))
	tc.jwt = jwttoken.NewJWTService(signingKey, "medsim")
	tc.events = memory.NewInMemoryStore()

	registries, err := app.New(context.Background(), app.Deps{
		InitialAuthority: id.Identity(authority),
		Logger:           logger.Discard(),
		Metrics:          metrics.New(prometheus.NewRegistry()),
		Auditor:          publisher.NewPublisher(tc.events),
		Clock:            tc.clock.Now,
	})
	if err != nil {
		return fmt.Errorf("build registries: %w", err)
	}
	router := httptransport.NewRouter(registries, jwttoken.NewJWTServiceAdapter(tc.jwt), logger.Discard(), nil)
	tc.server = httptest.NewServer(router)
	tc.client = tc.server.Client()
	tc.caller = ""
	return nil
}

func (tc *TestContext) Stop() {
	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}
}

// ActAs makes later requests carry a bearer token for caller. An empty
// caller sends no token.
func (tc *TestContext) ActAs(caller string) {
	tc.caller = caller
}

// Advance moves the registry clock forward.
func (tc *TestContext) Advance(d time.Duration) {
	tc.clock.Advance(d)
}

// Request sends body as JSON when it is non-empty and records the response.
func (tc *TestContext) Request(method, path, body string) error {
	var reader io.Reader
	if strings.TrimSpace(body) != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, tc.server.URL+path, reader)
	if err != nil {
		return err
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.caller != "" {
		token, err := tc.jwt.GenerateToken(id.Identity(tc.caller), time.Hour)
		if err != nil {
			return fmt.Errorf("mint token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.lastResponse = nil
	if len(tc.lastBody) > 0 {
		_ = json.Unmarshal(tc.lastBody, &tc.lastResponse)
	}
	return nil
}

// Post sends a JSON body built from v.
func (tc *TestContext) Post(path string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return tc.Request(http.MethodPost, path, string(body))
}

func (tc *TestContext) Status() int {
	return tc.lastStatus
}

func (tc *TestContext) Body() string {
	return string(tc.lastBody)
}

// Field returns a top-level field of the last JSON object response.
func (tc *TestContext) Field(name string) (any, bool) {
	if tc.lastResponse == nil {
		return nil, false
	}
	v, ok := tc.lastResponse[name]
	return v, ok
}

// AuditActions lists the audit actions emitted so far, oldest first.
func (tc *TestContext) AuditActions() ([]string, error) {
	events, err := tc.events.ListAll(context.Background())
	if err != nil {
		return nil, err
	}
	actions := make([]string, 0, len(events))
	for _, e := range events {
		actions = append(actions, e.Action)
	}
	return actions, nil
}
