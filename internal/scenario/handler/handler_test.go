package handler

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medsim/internal/platform/instrument"
	"medsim/internal/platform/logger"
	"medsim/internal/scenario/service"
	"medsim/internal/scenario/store"
	"medsim/pkg/testutil"
)

func newScenarioRouter(t *testing.T) chi.Router {
	t.Helper()
	svc := service.New(store.NewInMemory(), instrument.WithLogger(logger.Discard()))
	r := chi.NewRouter()
	New(svc, logger.Discard()).Register(r)
	return r
}

func createScenario(t *testing.T, router chi.Router, caller, scenarioID string) {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/scenarios", map[string]any{
		"scenario_id": scenarioID,
		"name":        "Anaphylaxis",
		"description": "Adult anaphylaxis in the ED",
		"difficulty":  2,
		"specialties": []string{"EM", "EM", " Peds "},
	})
	rr := testutil.DoRequest(router, testutil.WithCaller(req, caller))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func TestScenarioAuthorshipViaHandlers(t *testing.T) {
	router := newScenarioRouter(t)
	createScenario(t, router, "dr-a", "S")

	testutil.Given(t, "a scenario created by dr-a", func(t *testing.T) {
		testutil.When(t, "it is fetched", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/scenarios/S"))
			testutil.Then(t, "specialties are normalized and it is active", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				resp := testutil.UnmarshalResponse[ScenarioResponse](t, rr)
				assert.Equal(t, []string{"EM", "Peds"}, resp.Specialties)
				assert.Equal(t, "dr-a", resp.CreatedBy)
				assert.True(t, resp.Active)
			})
		})

		testutil.When(t, "dr-b updates it", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPut, "/scenarios/S", map[string]any{"name": "mine now"})
			rr := testutil.DoRequest(router, testutil.WithCaller(req, "dr-b"))
			testutil.Then(t, "it is forbidden", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "unauthorized")
			})
		})

		testutil.When(t, "dr-a updates it", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPut, "/scenarios/S", map[string]any{
				"name":       "Anaphylaxis (peds)",
				"difficulty": 3,
			})
			rr := testutil.DoRequest(router, testutil.WithCaller(req, "dr-a"))
			testutil.Then(t, "the new content is returned", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				resp := testutil.UnmarshalResponse[ScenarioResponse](t, rr)
				assert.Equal(t, "Anaphylaxis (peds)", resp.Name)
				assert.Equal(t, 3, resp.Difficulty)
				assert.Equal(t, "dr-a", resp.CreatedBy)
				assert.False(t, resp.UpdatedAt.Before(resp.CreatedAt))
			})
		})

		testutil.When(t, "the same key is created again", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/scenarios", map[string]any{"scenario_id": "S"})
			rr := testutil.DoRequest(router, testutil.WithCaller(req, "dr-b"))
			testutil.Then(t, "it conflicts", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusConflict, "already_exists")
			})
		})
	})
}

func TestScenarioRequestValidation(t *testing.T) {
	router := newScenarioRouter(t)

	t.Run("blank scenario id", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/scenarios", map[string]any{"scenario_id": "  "})
		rr := testutil.DoRequest(router, testutil.WithCaller(req, "dr-a"))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_input")
	})

	t.Run("unknown field", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/scenarios", map[string]any{"scenario_id": "S", "owner": "x"})
		rr := testutil.DoRequest(router, testutil.WithCaller(req, "dr-a"))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("anonymous create", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/scenarios", map[string]any{"scenario_id": "S"})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthenticated")
	})
}

func TestUnknownScenario(t *testing.T) {
	router := newScenarioRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/scenarios/ghost"))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")

	req := testutil.NewJSONRequest(t, http.MethodPut, "/scenarios/ghost", map[string]any{"name": "x"})
	rr = testutil.DoRequest(router, testutil.WithCaller(req, "dr-a"))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}
