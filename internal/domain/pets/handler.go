package pets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Minutos por defecto cuando el cuerpo no trae "minutes".
const (
	DefaultPlayMinutes = 10
	DefaultRestMinutes = 30
	DefaultWorkMinutes = 30
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))

		pr.Get("/{name}", getPetHandler(svc))
		pr.Delete("/{name}", deletePetHandler(svc))

		// Acciones
		pr.Post("/{name}/feed", feedHandler(svc))
		pr.Post("/{name}/play", minutesHandler(svc, DefaultPlayMinutes, svc.Play))
		pr.Post("/{name}/rest", minutesHandler(svc, DefaultRestMinutes, svc.Rest))
		pr.Post("/{name}/work", minutesHandler(svc, DefaultWorkMinutes, svc.Work))
		pr.Post("/{name}/buy", buyHandler(svc))
		pr.Post("/{name}/daily", dailyHandler(svc))
	})
}

type createPetRequest struct {
	Name    string `json:"name"`
	Species string `json:"species" enums:"cat,dog,dragon"`
}

// minutesRequest sirve para play/rest/work; minutes es opcional.
type minutesRequest struct {
	Minutes *int `json:"minutes"`
}

type buyRequest struct {
	Item string `json:"item" enums:"food,toy,energy_drink"`
}

// petResponse es el estado visible de una mascota (valores redondeados a 0.1).
type petResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Species        string     `json:"species"`
	DisplayForm    string     `json:"display_form"`
	Hunger         float64    `json:"hunger"`
	Happiness      float64    `json:"happiness"`
	Energy         float64    `json:"energy"`
	MaxEnergy      float64    `json:"max_energy"`
	Level          int        `json:"level"`
	XP             int        `json:"xp"`
	Coins          int        `json:"coins"`
	Evolved        bool       `json:"evolved"`
	LastUpdated    time.Time  `json:"last_updated"`
	GiftMessage    *string    `json:"gift_message,omitempty"`
	LastDailyClaim *time.Time `json:"last_daily_claim,omitempty"`
}

// outcomeResponse es la respuesta de toda operación que puede ser rechazada.
type outcomeResponse struct {
	OK      bool         `json:"ok"`
	Message string       `json:"message"`
	Reason  Reason       `json:"reason,omitempty"`
	Pet     *petResponse `json:"pet,omitempty"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Devuelve todas las mascotas ordenadas por nombre, con el decaimiento ya aplicado.
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.List(r.Context())

		out := make([]petResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toPetResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea una mascota desde la plantilla de su especie. Especies desconocidas conservan su nombre con los valores de "cat".
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Nombre y especie"
// @Success 201 {object} outcomeResponse
// @Failure 400 {object} outcomeResponse "nombre vacío o repetido"
// @Failure 500 {string} string "internal error"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		out, err := svc.Create(r.Context(), req.Name, req.Species)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !out.OK {
			writeJSON(w, statusFor(out.Reason), outcomeResponse{OK: false, Message: out.Message, Reason: out.Reason})
			return
		}

		resp := outcomeResponse{OK: true, Message: out.Message}
		if s, ok := svc.Get(r.Context(), strings.TrimSpace(req.Name)); ok {
			p := toPetResponse(s)
			resp.Pet = &p
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

// getPetHandler godoc
// @Summary Estado de una mascota
// @Tags pets
// @Produce json
// @Param name path string true "Nombre de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{name} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := svc.Get(r.Context(), chi.URLParam(r, "name"))
		if !ok {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(s))
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Tags pets
// @Produce json
// @Param name path string true "Nombre de la mascota"
// @Success 200 {object} outcomeResponse
// @Failure 404 {object} outcomeResponse
// @Failure 500 {string} string "internal error"
// @Router /pets/{name} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		out, err := svc.Delete(r.Context(), name)
		respondOutcome(w, r, svc, name, out, err)
	}
}

// feedHandler godoc
// @Summary Alimentar
// @Description Cuesta 5 monedas; baja el hambre 20 y sube la felicidad.
// @Tags actions
// @Produce json
// @Param name path string true "Nombre de la mascota"
// @Success 200 {object} outcomeResponse
// @Failure 404 {object} outcomeResponse
// @Failure 409 {object} outcomeResponse "monedas insuficientes"
// @Failure 500 {string} string "internal error"
// @Router /pets/{name}/feed [post]
func feedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		out, err := svc.Feed(r.Context(), name)
		respondOutcome(w, r, svc, name, out, err)
	}
}

// minutesHandler godoc
// @Summary Jugar, descansar o trabajar
// @Description Body opcional {"minutes": N}. Defaults: play 10, rest 30, work 30.
// @Tags actions
// @Accept json
// @Produce json
// @Param name path string true "Nombre de la mascota"
// @Param action path string true "play | rest | work"
// @Param payload body minutesRequest false "Duración en minutos"
// @Success 200 {object} outcomeResponse
// @Failure 400 {object} outcomeResponse "duración inválida"
// @Failure 404 {object} outcomeResponse
// @Failure 409 {object} outcomeResponse "sin energía"
// @Failure 500 {string} string "internal error"
// @Router /pets/{name}/{action} [post]
func minutesHandler(svc *Service, def int, act func(ctx context.Context, name string, minutes int) (Outcome, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req minutesRequest
		if err := decodeOptional(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		minutes := def
		if req.Minutes != nil {
			minutes = *req.Minutes
		}

		name := chi.URLParam(r, "name")
		out, err := act(r.Context(), name, minutes)
		respondOutcome(w, r, svc, name, out, err)
	}
}

// buyHandler godoc
// @Summary Comprar y usar un artículo
// @Tags actions
// @Accept json
// @Produce json
// @Param name path string true "Nombre de la mascota"
// @Param payload body buyRequest true "Artículo de la tienda"
// @Success 200 {object} outcomeResponse
// @Failure 400 {object} outcomeResponse "artículo inválido"
// @Failure 404 {object} outcomeResponse
// @Failure 409 {object} outcomeResponse "monedas o energía insuficientes"
// @Failure 500 {string} string "internal error"
// @Router /pets/{name}/buy [post]
func buyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req buyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		name := chi.URLParam(r, "name")
		out, err := svc.Buy(r.Context(), name, req.Item)
		respondOutcome(w, r, svc, name, out, err)
	}
}

// dailyHandler godoc
// @Summary Reclamar recompensa diaria
// @Tags actions
// @Produce json
// @Param name path string true "Nombre de la mascota"
// @Success 200 {object} outcomeResponse
// @Failure 404 {object} outcomeResponse
// @Failure 409 {object} outcomeResponse "ya reclamada hoy"
// @Failure 500 {string} string "internal error"
// @Router /pets/{name}/daily [post]
func dailyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		out, err := svc.ClaimDaily(r.Context(), name)
		respondOutcome(w, r, svc, name, out, err)
	}
}

// respondOutcome: error de persistencia => 500; rechazo => status según Reason;
// éxito => 200 con el estado actualizado si la mascota sigue existiendo.
func respondOutcome(w http.ResponseWriter, r *http.Request, svc *Service, name string, out Outcome, err error) {
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	resp := outcomeResponse{OK: out.OK, Message: out.Message, Reason: out.Reason}
	if !out.OK {
		writeJSON(w, statusFor(out.Reason), resp)
		return
	}
	if s, ok := svc.Get(r.Context(), name); ok {
		p := toPetResponse(s)
		resp.Pet = &p
	}
	writeJSON(w, http.StatusOK, resp)
}

func statusFor(reason Reason) int {
	switch reason {
	case ReasonNotFound:
		return http.StatusNotFound
	case ReasonInvalidInput:
		return http.StatusBadRequest
	case ReasonPreconditionFailed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeOptional acepta cuerpo vacío.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func toPetResponse(s Snapshot) petResponse {
	return petResponse{
		ID:             s.ID,
		Name:           s.Name,
		Species:        s.Species,
		DisplayForm:    s.DisplayForm,
		Hunger:         s.Hunger,
		Happiness:      s.Happiness,
		Energy:         s.Energy,
		MaxEnergy:      s.MaxEnergy,
		Level:          s.Level,
		XP:             s.XP,
		Coins:          s.Coins,
		Evolved:        s.Evolved,
		LastUpdated:    s.LastUpdated,
		GiftMessage:    s.GiftMessage,
		LastDailyClaim: s.LastDailyClaim,
	}
}

// writeJSON está duplicado en los handlers de cada módulo (pets/catalog/activity)
// para no crear un paquete de helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
