package pets

import (
	"sort"
	"strings"
)

// World es el registro en memoria de mascotas indexadas por nombre.
// Es el único dueño de los *Pet; no tiene locks (ver Service).
type World struct {
	eng  *Engine
	pets map[string]*Pet
}

func NewWorld(eng *Engine) *World {
	return &World{
		eng:  eng,
		pets: make(map[string]*Pet),
	}
}

func (w *World) Engine() *Engine { return w.eng }

func (w *World) Create(name, species string) Outcome {
	name = strings.TrimSpace(name)
	if name == "" {
		return reject(ReasonInvalidInput, "Pet name cannot be empty.")
	}
	if _, exists := w.pets[name]; exists {
		return reject(ReasonInvalidInput, "A pet with that name already exists.")
	}

	p := w.eng.NewPet(name, species)
	w.pets[name] = p
	return succeed("Pet '%s' the %s created.", name, p.st.Species)
}

func (w *World) Get(name string) (*Pet, bool) {
	p, ok := w.pets[name]
	return p, ok
}

func (w *World) Delete(name string) bool {
	if _, ok := w.pets[name]; !ok {
		return false
	}
	delete(w.pets, name)
	return true
}

// List devuelve las mascotas ordenadas por nombre.
func (w *World) List() []*Pet {
	out := make([]*Pet, 0, len(w.pets))
	for _, p := range w.pets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].st.Name < out[j].st.Name })
	return out
}

func (w *World) Len() int { return len(w.pets) }

// Records serializa todas las mascotas en el documento indexado por nombre.
func (w *World) Records() map[string]Record {
	out := make(map[string]Record, len(w.pets))
	for name, p := range w.pets {
		out[name] = Encode(p.st)
	}
	return out
}

// Restore reemplaza el contenido con los registros dados y devuelve cuántos
// cargó. Si el registro no trae nombre se usa la clave del documento; el
// índice siempre es el nombre de la mascota. Las claves se recorren en orden
// y, si dos registros traen el mismo nombre, gana el primero: las claves
// descartadas se devuelven en dropped.
func (w *World) Restore(records map[string]Record) (n int, dropped []string) {
	now := w.eng.now()
	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pets := make(map[string]*Pet, len(records))
	for _, key := range keys {
		r := records[key]
		if strings.TrimSpace(r.Name) == "" {
			r.Name = key
		}
		if _, dup := pets[r.Name]; dup {
			dropped = append(dropped, key)
			continue
		}
		p := w.eng.Restore(Decode(r, now))
		pets[p.st.Name] = p
	}
	w.pets = pets
	return len(pets), dropped
}
