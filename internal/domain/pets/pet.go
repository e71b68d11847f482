package pets

import (
	"fmt"
	"math"
	"time"
)

const (
	maxStat      = 100.0
	defaultCoins = 50
)

// Pet es la entidad del juego. No es segura para uso concurrente:
// quien la use (Service) debe serializar el acceso.
type Pet struct {
	eng     *Engine
	st      State
	notices []Notice
}

// State devuelve una copia del estado actual (sin aplicar decaimiento).
func (p *Pet) State() State { return p.st }

func (p *Pet) Name() string { return p.st.Name }

// TakeNotices devuelve y limpia los eventos pasivos acumulados.
func (p *Pet) TakeNotices() []Notice {
	out := p.notices
	p.notices = nil
	return out
}

func (p *Pet) notify(kind, format string, args ...any) {
	p.notices = append(p.notices, Notice{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Refresh aplica todo el efecto del tiempo transcurrido desde LastUpdated.
// Si no pasó tiempo (o el reloj retrocedió) no hace nada, ni siquiera el
// sorteo de regalo, así que llamarlo dos veces en el mismo instante es idempotente.
func (p *Pet) Refresh() {
	now := p.eng.now()
	elapsed := now.Sub(p.st.LastUpdated)
	if elapsed <= 0 {
		return
	}
	p.decay(elapsed.Hours())
	p.rollGift()
	p.st.LastUpdated = now
}

func (p *Pet) decay(hours float64) {
	if hours <= 0 {
		return
	}
	r := p.eng.rules

	p.st.Hunger = math.Min(maxStat, p.st.Hunger+r.HungerPerHour*hours)
	p.st.Energy = clamp(p.st.Energy+r.EnergyRecoverPerHour*hours, 0, p.st.MaxEnergy)

	if p.st.Hunger > r.NeglectHunger || p.st.Energy < r.NeglectEnergy {
		p.st.Happiness = math.Max(0, p.st.Happiness-r.HappinessDecayPerHour*hours)
	}
}

func (p *Pet) rollGift() {
	r := p.eng.rules
	if p.eng.rnd.Float64() >= r.GiftChance {
		return
	}
	amount := r.GiftMin + p.eng.rnd.IntN(r.GiftMax-r.GiftMin+1)
	p.st.Coins += amount
	p.st.LastGiftTime = p.eng.now()
	p.st.LastGiftAmount = amount
	p.notify(NoticeGift, "%s found %d coins!", p.st.Name, amount)
}

// gainXP suma experiencia y resuelve subidas de nivel (puede haber varias)
// y la evolución, que es de una sola vía.
func (p *Pet) gainXP(amount int) {
	r := p.eng.rules
	p.st.XP += amount

	leveled := false
	for p.st.XP >= r.XPPerLevel {
		p.st.XP -= r.XPPerLevel
		p.st.Level++
		p.st.Coins += r.LevelUpBonus
		leveled = true
		p.notify(NoticeLevelUp, "%s reached level %d! +%d coins.", p.st.Name, p.st.Level, r.LevelUpBonus)
	}

	if leveled && !p.st.Evolved && p.st.Level >= p.st.EvolveAt {
		p.st.Evolved = true
		p.notify(NoticeEvolved, "%s evolved into %s!", p.st.Name, p.st.DisplayForm())
	}
}

// Status refresca y arma el snapshot. El mensaje de regalo solo aparece
// si el regalo fue hace menos de GiftDisplayWindow.
func (p *Pet) Status() Snapshot {
	p.Refresh()

	now := p.eng.now()
	s := p.st

	var gift *string
	if !s.LastGiftTime.IsZero() && now.Sub(s.LastGiftTime) < p.eng.rules.GiftDisplayWindow {
		msg := fmt.Sprintf("Found %d coins!", s.LastGiftAmount)
		gift = &msg
	}

	var claim *time.Time
	if !s.LastDailyClaim.IsZero() {
		t := s.LastDailyClaim
		claim = &t
	}

	return Snapshot{
		ID:             s.ID,
		Name:           s.Name,
		Species:        s.Species,
		DisplayForm:    s.DisplayForm(),
		Hunger:         round1(s.Hunger),
		Happiness:      round1(s.Happiness),
		Energy:         round1(s.Energy),
		MaxEnergy:      s.MaxEnergy,
		Level:          s.Level,
		XP:             s.XP,
		Coins:          s.Coins,
		Evolved:        s.Evolved,
		LastUpdated:    s.LastUpdated,
		GiftMessage:    gift,
		LastDailyClaim: claim,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
