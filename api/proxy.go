package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/maxpoletaev/nodepool/nodeapi"
	"github.com/maxpoletaev/nodepool/quorum"
	"github.com/maxpoletaev/nodepool/selection"
)

const (
	headerQuorum          = "X-Quorum"
	headerPreferPermanode = "X-Prefer-Permanode"
	contentTypeBinary     = "application/vnd.iota.serializer-v1"
)

// proxyAPI forwards read requests to the node pool.
type proxyAPI struct {
	pool Pool
}

func newProxyAPI(pool Pool) *proxyAPI {
	return &proxyAPI{pool: pool}
}

func (api *proxyAPI) Bind(r chi.Router) {
	r.Get("/info", api.handleInfo)
	r.Get("/proxy/*", api.handleProxy)
}

// errorStatus maps a pool error to the status returned to the caller.
func errorStatus(err error) int {
	var (
		transportErr *nodeapi.TransportError
		thresholdErr *quorum.QuorumThresholdError
		poolSizeErr  *quorum.QuorumPoolSizeError
	)

	switch {
	case errors.Is(err, selection.ErrNoHealthyNodes), errors.Is(err, selection.ErrNoPowCapableNode):
		return http.StatusServiceUnavailable
	case errors.As(err, &poolSizeErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &thresholdErr):
		return http.StatusConflict
	case errors.As(err, &transportErr) && transportErr.StatusCode >= 400 && transportErr.StatusCode < 500:
		return transportErr.StatusCode
	default:
		return http.StatusBadGateway
	}
}

func (api *proxyAPI) handleInfo(w http.ResponseWriter, r *http.Request) {
	info, err := api.pool.NodeInfo(r.Context())
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	render.JSON(w, r, info)
}

func boolHeader(r *http.Request, name string) (bool, error) {
	v := r.Header.Get(name)
	if v == "" {
		return false, nil
	}

	return strconv.ParseBool(v)
}

func (api *proxyAPI) handleProxy(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")
	query := r.URL.RawQuery

	if r.Header.Get("Accept") == contentTypeBinary {
		data, err := api.pool.RequestBytes(r.Context(), path, query)
		if err != nil {
			http.Error(w, err.Error(), errorStatus(err))
			return
		}

		w.Header().Set("Content-Type", contentTypeBinary)
		_, _ = w.Write(data)

		return
	}

	needQuorum, err := boolHeader(r, headerQuorum)
	if err != nil {
		http.Error(w, "invalid "+headerQuorum+" header", http.StatusBadRequest)
		return
	}

	preferPermanode, err := boolHeader(r, headerPreferPermanode)
	if err != nil {
		http.Error(w, "invalid "+headerPreferPermanode+" header", http.StatusBadRequest)
		return
	}

	var body json.RawMessage

	if err := api.pool.RequestJSON(r.Context(), path, query, needQuorum, preferPermanode, &body); err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	render.JSON(w, r, body)
}
