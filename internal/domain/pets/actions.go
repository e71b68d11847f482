package pets

import (
	"math"

	"petverse/internal/domain/catalog"
)

const dateLayout = "2006-01-02"

// Todas las acciones siguen el mismo orden: Refresh, validar todo, mutar.
// Si una validación falla el estado queda intacto (salvo el decaimiento,
// que se habría aplicado igual con cualquier lectura).

// Feed compra comida al costo fijo de las reglas y alimenta a la mascota.
func (p *Pet) Feed() Outcome {
	p.Refresh()
	r := p.eng.rules

	if p.st.Coins < r.FeedCost {
		return reject(ReasonPreconditionFailed, "Not enough coins to buy food.")
	}
	p.st.Coins -= r.FeedCost

	old := p.st.Hunger
	p.st.Hunger = math.Max(0, p.st.Hunger-r.FeedStrength)
	p.st.Happiness = math.Min(maxStat, p.st.Happiness+r.FeedStrength*0.2)
	p.gainXP(r.FeedXP)

	return succeed("Fed %s: hunger %.1f -> %.1f", p.st.Name, old, p.st.Hunger)
}

func (p *Pet) Play(minutes int) Outcome {
	p.Refresh()
	r := p.eng.rules

	if minutes <= 0 {
		return reject(ReasonInvalidInput, "Invalid play duration.")
	}
	cost := float64(minutes) * r.PlayEnergyPerMinute
	if p.st.Energy < cost {
		return reject(ReasonPreconditionFailed, p.st.Name+" is too tired to play.")
	}

	old := p.st.Energy
	p.st.Energy = math.Max(0, p.st.Energy-cost)
	p.st.Happiness = math.Min(maxStat, p.st.Happiness+float64(minutes)*r.PlayHappinessPerMinute)
	p.st.Coins += r.PlayReward
	p.gainXP(r.PlayBaseXP + minutes/5)

	return succeed("Played %d min: energy %.1f -> %.1f. +%d coin.", minutes, old, p.st.Energy, r.PlayReward)
}

func (p *Pet) Rest(minutes int) Outcome {
	p.Refresh()
	r := p.eng.rules

	if minutes <= 0 {
		return reject(ReasonInvalidInput, "Invalid rest duration.")
	}

	old := p.st.Energy
	p.st.Energy = math.Min(p.st.MaxEnergy, p.st.Energy+float64(minutes)*r.RestEnergyPerMinute)
	p.st.Happiness = math.Min(maxStat, p.st.Happiness+float64(minutes)*r.RestHappinessPerMinute)
	p.st.Coins += r.RestReward

	return succeed("%s rested: energy %.1f -> %.1f. +%d coin.", p.st.Name, old, p.st.Energy, r.RestReward)
}

// Work manda a trabajar a la mascota: gasta energía, gana monedas y algo de XP.
func (p *Pet) Work(minutes int) Outcome {
	p.Refresh()
	r := p.eng.rules

	if minutes <= 0 {
		return reject(ReasonInvalidInput, "Invalid job duration.")
	}
	cost := float64(minutes) * r.WorkEnergyPerMinute
	if p.st.Energy < cost {
		return reject(ReasonPreconditionFailed, p.st.Name+" is too tired to work. Needs more energy.")
	}

	earned := minutes / r.WorkMinutesPerCoin
	p.st.Energy = math.Max(0, p.st.Energy-cost)
	p.st.Coins += earned
	p.gainXP(max(1, minutes/10))

	return succeed("%s worked for %d mins and earned %d coins.", p.st.Name, minutes, earned)
}

// Buy compra y usa un artículo. El precio y, para juguetes, la energía se
// validan antes de cobrar: no hay reembolsos.
func (p *Pet) Buy(itemKey string) Outcome {
	p.Refresh()

	item, ok := p.eng.catalog.Item(itemKey)
	if !ok {
		return reject(ReasonInvalidInput, "Invalid item.")
	}
	if p.st.Coins < item.Price {
		return reject(ReasonPreconditionFailed, "Not enough coins.")
	}
	if item.Kind == catalog.ItemToy && p.st.Energy < item.EnergyCost {
		return reject(ReasonPreconditionFailed, p.st.Name+" is too tired to use the toy.")
	}

	p.st.Coins -= item.Price

	switch item.Kind {
	case catalog.ItemFood:
		p.st.Hunger = math.Max(0, p.st.Hunger-item.HungerRestore)
		p.st.Happiness = math.Min(maxStat, p.st.Happiness+item.Happiness)
		p.gainXP(item.XP)
		return succeed("Used %s. Hunger -> %.1f", item.Label(), p.st.Hunger)

	case catalog.ItemToy:
		p.st.Energy = math.Max(0, p.st.Energy-item.EnergyCost)
		p.st.Happiness = math.Min(maxStat, p.st.Happiness+item.Happiness)
		p.gainXP(item.XP)
		return succeed("Played with %s. Energy -> %.1f", item.Label(), p.st.Energy)

	default: // catalog.ItemEnergyDrink
		p.st.Energy = math.Min(p.st.MaxEnergy, p.st.Energy+item.EnergyRestore)
		p.st.Happiness = math.Min(maxStat, p.st.Happiness+item.Happiness)
		p.gainXP(item.XP)
		return succeed("Drank %s. Energy -> %.1f", item.Label(), p.st.Energy)
	}
}

// ClaimDaily entrega la recompensa diaria una vez por fecha de calendario
// (en la zona del Engine).
func (p *Pet) ClaimDaily() Outcome {
	p.Refresh()
	r := p.eng.rules

	now := p.eng.now()
	today := now.In(p.eng.loc).Format(dateLayout)
	if !p.st.LastDailyClaim.IsZero() && p.st.LastDailyClaim.In(p.eng.loc).Format(dateLayout) == today {
		return reject(ReasonPreconditionFailed, "Daily reward already claimed today.")
	}

	p.st.Coins += r.DailyReward
	p.st.LastDailyClaim = now

	return succeed("Daily reward claimed! +%d coins.", r.DailyReward)
}
