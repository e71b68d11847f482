package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, cat *Catalog) {
	r.Get("/shop", listShopHandler(cat))
	r.Get("/species", listSpeciesHandler(cat))
}

// listShopHandler godoc
// @Summary Artículos de la tienda
// @Description Lista los artículos disponibles ordenados por precio.
// @Tags catalog
// @Produce json
// @Success 200 {array} Item
// @Router /shop [get]
func listShopHandler(cat *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.ListItems())
	}
}

// listSpeciesHandler godoc
// @Summary Especies disponibles
// @Tags catalog
// @Produce json
// @Success 200 {array} Species
// @Router /species [get]
func listSpeciesHandler(cat *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.ListSpecies())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
