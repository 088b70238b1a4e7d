package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/netherlink/internal/api/jsonrpcx"
	"github.com/danghamo/netherlink/internal/api/middleware"
	"github.com/danghamo/netherlink/internal/app/service"
	"github.com/danghamo/netherlink/internal/domain/geom"
	"github.com/danghamo/netherlink/internal/domain/shared"
	"github.com/danghamo/netherlink/pkg/logger"
)

func blockPos(x, y, z int64) geom.BlockPos {
	return geom.BlockPos{X: x, Y: y, Z: z}
}

type testEnv struct {
	portals    *PortalHandler
	world      *WorldHandler
	testPoints *TestPointHandler
}

func newTestEnv() *testEnv {
	log := logger.NewDefault()
	worlds := service.NewWorldService(log, nil)
	links := service.NewLinkService(log, worlds, nil, shared.Player)
	return &testEnv{
		portals:    NewPortalHandler(log, worlds, links, nil),
		world:      NewWorldHandler(log, worlds, links),
		testPoints: NewTestPointHandler(log, worlds),
	}
}

// callRPC posts a JSON-RPC request to the handler, with the error adapter
// middleware in place so error responses get written.
func callRPC(t *testing.T, handler http.HandlerFunc, params any) jsonrpcx.JSONRPCResponse {
	t.Helper()

	rawParams, err := json.Marshal(params)
	require.NoError(t, err)

	body, err := json.Marshal(jsonrpcx.JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  "test",
		Params:  rawParams,
		ID:      1,
	})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/test", bytes.NewReader(body))
	w := httptest.NewRecorder()

	wrapped := middleware.ErrorAdapter(logger.NewDefault())(handler)
	wrapped.ServeHTTP(w, r)

	var response jsonrpcx.JSONRPCResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	return response
}

// resultAs re-decodes a response result into the given structure.
func resultAs(t *testing.T, response jsonrpcx.JSONRPCResponse, out any) {
	t.Helper()
	raw, err := json.Marshal(response.Result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func createPortal(t *testing.T, env *testEnv, dimension string, x, y, z int64) uint64 {
	t.Helper()

	response := callRPC(t, env.portals.HandleCreate, CreatePortalRequest{
		Dimension: dimension,
		Position:  blockPos(x, y, z),
		Axis:      "x",
	})
	require.Nil(t, response.Error)

	var created struct {
		ID uint64 `json:"id"`
	}
	resultAs(t, response, &created)
	require.NotZero(t, created.ID)
	return created.ID
}

func TestPortalHandlerCreate(t *testing.T) {
	env := newTestEnv()

	t.Run("creates minimum size portal", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleCreate, CreatePortalRequest{
			Dimension: "overworld",
			Position:  blockPos(0, 64, 0),
			Axis:      "x",
		})
		require.Nil(t, response.Error)

		var created struct {
			ID     uint64 `json:"id"`
			Region struct {
				Min map[string]int64 `json:"min"`
				Max map[string]int64 `json:"max"`
			} `json:"region"`
		}
		resultAs(t, response, &created)
		assert.NotZero(t, created.ID)
		assert.Equal(t, int64(66), created.Region.Max["y"])
	})

	t.Run("rejects unknown dimension", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleCreate, CreatePortalRequest{
			Dimension: "the_end",
			Position:  blockPos(0, 64, 0),
			Axis:      "x",
		})
		require.NotNil(t, response.Error)
		assert.Equal(t, shared.ErrCodeInvalidDimension, response.Error.Code)
	})

	t.Run("rejects unknown axis", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleCreate, CreatePortalRequest{
			Dimension: "overworld",
			Position:  blockPos(0, 64, 0),
			Axis:      "y",
		})
		require.NotNil(t, response.Error)
	})
}

func TestPortalHandlerGetAndList(t *testing.T) {
	env := newTestEnv()
	id := createPortal(t, env, "overworld", 10, 64, 10)

	t.Run("get returns the portal", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleGet, GetPortalRequest{
			Dimension: "overworld",
			PortalID:  id,
		})
		require.Nil(t, response.Error)

		var got struct {
			ID uint64 `json:"id"`
		}
		resultAs(t, response, &got)
		assert.Equal(t, id, got.ID)
	})

	t.Run("get unknown portal fails", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleGet, GetPortalRequest{
			Dimension: "overworld",
			PortalID:  99999,
		})
		require.NotNil(t, response.Error)
		assert.Equal(t, shared.ErrCodeNotFound, response.Error.Code)
	})

	t.Run("list returns portals in order", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleList, ListPortalsRequest{Dimension: "overworld"})
		require.Nil(t, response.Error)

		var list struct {
			Portals []json.RawMessage `json:"portals"`
			Total   int               `json:"total"`
		}
		resultAs(t, response, &list)
		assert.Equal(t, 1, list.Total)
		assert.Len(t, list.Portals, 1)
	})

	t.Run("list of empty dimension", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleList, ListPortalsRequest{Dimension: "nether"})
		require.Nil(t, response.Error)

		var list struct {
			Total int `json:"total"`
		}
		resultAs(t, response, &list)
		assert.Zero(t, list.Total)
	})
}

func TestPortalHandlerMutations(t *testing.T) {
	env := newTestEnv()
	id := createPortal(t, env, "overworld", 0, 64, 0)

	t.Run("rename returns merge patch", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleRename, RenamePortalRequest{
			Dimension: "overworld",
			PortalID:  id,
			Name:      "base hub",
		})
		require.Nil(t, response.Error)

		var updated struct {
			Portal struct {
				Name string `json:"name"`
			} `json:"portal"`
			Changes map[string]interface{} `json:"changes"`
		}
		resultAs(t, response, &updated)
		assert.Equal(t, "base hub", updated.Portal.Name)
		assert.Equal(t, map[string]interface{}{"name": "base hub"}, updated.Changes)
	})

	t.Run("move with lock size translates", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleMove, MovePortalRequest{
			Dimension: "overworld",
			PortalID:  id,
			Min:       blockPos(10, 70, 10),
			LockSize:  true,
		})
		require.Nil(t, response.Error)

		var updated struct {
			Portal struct {
				Region struct {
					Min map[string]int64 `json:"min"`
					Max map[string]int64 `json:"max"`
				} `json:"region"`
			} `json:"portal"`
		}
		resultAs(t, response, &updated)
		assert.Equal(t, int64(10), updated.Portal.Region.Min["x"])
		assert.Equal(t, int64(72), updated.Portal.Region.Max["y"])
	})

	t.Run("set width", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleSetWidth, SetPortalWidthRequest{
			Dimension: "overworld",
			PortalID:  id,
			Width:     5,
		})
		require.Nil(t, response.Error)
	})

	t.Run("set color rejects malformed value", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleSetColor, SetPortalColorRequest{
			Dimension: "overworld",
			PortalID:  id,
			Color:     "not-a-color",
		})
		require.NotNil(t, response.Error)
	})

	t.Run("delete removes the portal", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleDelete, DeletePortalRequest{
			Dimension: "overworld",
			PortalID:  id,
		})
		require.Nil(t, response.Error)

		response = callRPC(t, env.portals.HandleGet, GetPortalRequest{
			Dimension: "overworld",
			PortalID:  id,
		})
		require.NotNil(t, response.Error)
	})
}

func TestPortalHandlerDestinations(t *testing.T) {
	env := newTestEnv()
	overworldID := createPortal(t, env, "overworld", 0, 64, 0)
	netherID := createPortal(t, env, "nether", 0, 64, 0)

	t.Run("default entity reaches the paired portal", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleDestinations, PortalDestinationsRequest{
			Dimension: "overworld",
			PortalID:  overworldID,
		})
		require.Nil(t, response.Error)

		var result struct {
			Destinations []struct {
				ID uint64 `json:"id"`
			} `json:"destinations"`
			NewPortal bool `json:"new_portal"`
		}
		resultAs(t, response, &result)
		require.Len(t, result.Destinations, 1)
		assert.Equal(t, netherID, result.Destinations[0].ID)
		assert.False(t, result.NewPortal)
	})

	t.Run("oversized entity is rejected", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleDestinations, PortalDestinationsRequest{
			Dimension: "overworld",
			PortalID:  overworldID,
			Entity:    &EntityParams{Width: 2.0, Height: 1.0},
		})
		require.NotNil(t, response.Error)
		assert.Equal(t, shared.ErrCodeEntityWontFit, response.Error.Code)
	})

	t.Run("unknown preset is rejected", func(t *testing.T) {
		response := callRPC(t, env.portals.HandleDestinations, PortalDestinationsRequest{
			Dimension: "overworld",
			PortalID:  overworldID,
			Entity:    &EntityParams{Preset: "dragon"},
		})
		require.NotNil(t, response.Error)
		assert.Equal(t, shared.ErrCodeInvalidEntity, response.Error.Code)
	})

	t.Run("lone portal flags new portal", func(t *testing.T) {
		loneID := createPortal(t, env, "nether", 5000, 64, 5000)
		response := callRPC(t, env.portals.HandleDestinations, PortalDestinationsRequest{
			Dimension: "nether",
			PortalID:  loneID,
		})
		require.Nil(t, response.Error)

		var result struct {
			Destinations []json.RawMessage `json:"destinations"`
			NewPortal    bool              `json:"new_portal"`
		}
		resultAs(t, response, &result)
		assert.Empty(t, result.Destinations)
		assert.True(t, result.NewPortal)
	})
}

func TestPortalHandlerRejectsGet(t *testing.T) {
	env := newTestEnv()

	r := httptest.NewRequest(http.MethodGet, "/api/v1/portal.List", nil)
	w := httptest.NewRecorder()

	wrapped := middleware.ErrorAdapter(logger.NewDefault())(http.HandlerFunc(env.portals.HandleList))
	wrapped.ServeHTTP(w, r)

	var response jsonrpcx.JSONRPCResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.NotNil(t, response.Error)
	assert.Equal(t, jsonrpcx.MethodNotFound, response.Error.Code)
}
