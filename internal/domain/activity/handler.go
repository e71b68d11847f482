package activity

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"petverse/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Get("/pets/{name}/activity", listActivityHandler(svc, petsSvc))
}

// entryResponse es una entrada del registro de actividad devuelta por la API.
type entryResponse struct {
	ID         string    `json:"id"`
	PetName    string    `json:"pet_name"`
	Kind       Kind      `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// listActivityHandler godoc
// @Summary Actividad reciente de una mascota
// @Description Acciones exitosas, regalos, subidas de nivel y evoluciones; la más reciente primero.
// @Tags activity
// @Produce json
// @Param name path string true "Nombre de la mascota"
// @Param limit query int false "Máximo de entradas (1-200). Por defecto 50"
// @Param kinds query string false "Lista CSV de tipos (ej: feed,level_up)"
// @Success 200 {array} entryResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 404 {string} string "pet not found"
// @Failure 500 {string} string "internal error"
// @Router /pets/{name}/activity [get]
func listActivityHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if _, ok := petsSvc.Get(r.Context(), name); !ok {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByPet(r.Context(), name, filter)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, entryResponse{
				ID:         e.ID,
				PetName:    e.PetName,
				Kind:       e.Kind,
				Message:    e.Message,
				OccurredAt: e.OccurredAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	filter := ListFilter{Limit: DefaultListLimit}

	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > MaxListLimit {
			return ListFilter{}, errors.New("limit must be between 1 and 200")
		}
		filter.Limit = n
	}

	// kinds=feed,level_up
	if v := strings.TrimSpace(r.URL.Query().Get("kinds")); v != "" {
		for _, p := range strings.Split(v, ",") {
			k := Kind(strings.TrimSpace(p))
			if k == "" {
				continue
			}
			if !k.Valid() {
				return ListFilter{}, errors.New("unknown kind: " + string(k))
			}
			filter.Kinds = append(filter.Kinds, k)
		}
	}

	return filter, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
