package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/maxpoletaev/nodepool/api/model"
	"github.com/maxpoletaev/nodepool/client"
	"github.com/maxpoletaev/nodepool/internal/generic"
	"github.com/maxpoletaev/nodepool/node"
)

type nodesAPI struct {
	pool Pool
}

func newNodesAPI(pool Pool) *nodesAPI {
	return &nodesAPI{
		pool: pool,
	}
}

func (api *nodesAPI) Bind(r chi.Router) {
	r.Get("/nodes", api.handleGetNodes)
	r.Put("/nodes/state", api.handleSetState)
	r.Get("/health", api.handleHealth)
}

func (api *nodesAPI) handleGetNodes(w http.ResponseWriter, r *http.Request) {
	healthy := make(map[string]bool)
	for _, entry := range api.pool.HealthyNodes() {
		healthy[entry.Node.Key()] = true
	}

	nodes := api.pool.Nodes()

	if v := r.URL.Query().Get("enabled"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "invalid enabled parameter", http.StatusBadRequest)
			return
		}

		nodes = generic.Filter(nodes, func(n node.Node) bool {
			return n.Disabled != enabled
		})
	}

	resp := model.GetNodesResponse{
		Nodes: make([]model.Node, len(nodes)),
	}

	for i, n := range nodes {
		resp.Nodes[i] = model.Node{
			URL:      n.String(),
			Disabled: n.Disabled,
			Healthy:  healthy[n.Key()],
		}
	}

	render.JSON(w, r, resp)
}

func (api *nodesAPI) handleSetState(w http.ResponseWriter, r *http.Request) {
	var req model.SetNodeStateParams

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := api.pool.SetNodeDisabled(req.URL, req.Disabled); err != nil {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, client.ErrUnknownNode):
			status = http.StatusNotFound
		case errors.Is(err, node.ErrInvalidURL):
			status = http.StatusBadRequest
		}

		http.Error(w, err.Error(), status)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (api *nodesAPI) handleHealth(w http.ResponseWriter, r *http.Request) {
	entries := api.pool.HealthyNodes()

	resp := model.GetHealthResponse{
		HealthCheck: api.pool.HealthCheckEnabled(),
		Nodes:       make([]model.HealthyNode, len(entries)),
	}

	for i, entry := range entries {
		resp.Nodes[i] = model.HealthyNode{
			URL:      entry.Node.String(),
			Name:     entry.Info.Name,
			Version:  entry.Info.Version,
			Network:  entry.Info.Protocol.NetworkName,
			Features: entry.Info.Features,
		}
	}

	if resp.HealthCheck && len(entries) == 0 {
		render.Status(r, http.StatusServiceUnavailable)
	}

	render.JSON(w, r, resp)
}
