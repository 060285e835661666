package api

//go:generate mockgen -destination=mocks.go -package=api github.com/maxpoletaev/nodepool/api Pool

import (
	"github.com/go-chi/chi/v5"
)

func CreateRouter(pool Pool) *chi.Mux {
	r := chi.NewRouter()

	newNodesAPI(pool).Bind(r)
	newProxyAPI(pool).Bind(r)

	return r
}
