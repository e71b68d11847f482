package pets

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"petverse/internal/domain/catalog"
)

// -------------------------
// Test doubles
// -------------------------

type manualClock struct {
	t time.Time
}

func (c *manualClock) Now() time.Time          { return c.t }
func (c *manualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// stubRand: f < GiftChance => hay regalo; n es el offset sobre GiftMin.
type stubRand struct {
	f float64
	n int
}

func (r *stubRand) Float64() float64 { return r.f }
func (r *stubRand) IntN(n int) int   { return min(r.n, n-1) }

func noGift() *stubRand { return &stubRand{f: 0.99} }

func newTestEngine(t *testing.T, rnd Rand) (*Engine, *manualClock) {
	t.Helper()
	clock := &manualClock{t: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)}
	if rnd == nil {
		rnd = noGift()
	}
	eng := NewEngine(catalog.Default(),
		WithClock(clock),
		WithRand(rnd),
		WithLocation(time.UTC),
	)
	return eng, clock
}

// restored arma una mascota "cat" con el estado modificado por fn.
func restored(eng *Engine, fn func(*State)) *Pet {
	p := eng.NewPet("Tom", "cat")
	st := p.State()
	fn(&st)
	return eng.Restore(st)
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// -------------------------
// Creación
// -------------------------

func TestNewPet_CatTemplate(t *testing.T) {
	eng, clock := newTestEngine(t, nil)
	p := eng.NewPet("  Tom ", "CAT")

	st := p.State()
	if st.Name != "Tom" || st.Species != "cat" {
		t.Fatalf("unexpected identity: %q %q", st.Name, st.Species)
	}
	if st.Coins != 50 || st.Hunger != 30 || st.Energy != 100 || st.Happiness != 60 {
		t.Fatalf("unexpected cat defaults: %#v", st)
	}
	if st.MaxEnergy != 100 || st.EvolveAt != 5 || st.Evolution != "Big Cat" || st.Level != 1 || st.XP != 0 {
		t.Fatalf("unexpected progression defaults: %#v", st)
	}
	if !st.LastUpdated.Equal(clock.Now()) {
		t.Fatalf("expected LastUpdated = now")
	}
	if st.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
}

// -------------------------
// Acciones
// -------------------------

func TestFeed_TomScenario(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	p := eng.NewPet("Tom", "cat")

	out := p.Feed()
	if !out.OK {
		t.Fatalf("expected feed ok, got %#v", out)
	}
	st := p.State()
	if st.Coins != 45 || st.Hunger != 10 {
		t.Fatalf("expected coins=45 hunger=10, got coins=%d hunger=%.1f", st.Coins, st.Hunger)
	}
	if !approx(st.Happiness, 64) || st.XP != 10 {
		t.Fatalf("expected happiness 64 xp 10, got %.2f %d", st.Happiness, st.XP)
	}
	if out.Message != "Fed Tom: hunger 30.0 -> 10.0" {
		t.Fatalf("unexpected message %q", out.Message)
	}
}

func TestFeed_NotEnoughCoins_LeavesStateUntouched(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	p := restored(eng, func(s *State) { s.Coins = 4 })
	before := p.State()

	out := p.Feed()
	if out.OK || out.Reason != ReasonPreconditionFailed {
		t.Fatalf("expected precondition failure, got %#v", out)
	}
	if p.State() != before {
		t.Fatalf("state changed on failure")
	}
}

func TestFeed_HungerClampsAtZero(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	p := restored(eng, func(s *State) { s.Hunger = 5; s.Happiness = 99 })

	p.Feed()
	if p.State().Hunger != 0 || p.State().Happiness != 100 {
		t.Fatalf("expected clamps, got %#v", p.State())
	}
}

func TestWork_100Minutes(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	p := eng.NewPet("Tom", "cat")

	out := p.Work(100)
	if !out.OK {
		t.Fatalf("expected work ok, got %#v", out)
	}
	st := p.State()
	if !approx(st.Energy, 70) || st.Coins != 70 || st.XP != 10 {
		t.Fatalf("expected energy=70 coins=70 xp=10, got %.2f %d %d", st.Energy, st.Coins, st.XP)
	}
	if out.Message != "Tom worked for 100 mins and earned 20 coins." {
		t.Fatalf("unexpected message %q", out.Message)
	}
}

func TestWork_ShortShiftGivesAtLeastOneXP(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	p := eng.NewPet("Tom", "cat")

	p.Work(4)
	if p.State().XP != 1 || p.State().Coins != 50 {
		t.Fatalf("expected xp 1 and no coins, got %#v", p.State())
	}
}

func TestWork_Rejections(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	p := eng.NewPet("Tom", "cat")
	if out := p.Work(0); out.OK || out.Reason != ReasonInvalidInput {
		t.Fatalf("expected invalid input for 0 minutes, got %#v", out)
	}

	tired := restored(eng, func(s *State) { s.Energy = 29.9 })
	before := tired.State()
	out := tired.Work(100)
	if out.OK || out.Reason != ReasonPreconditionFailed {
		t.Fatalf("expected precondition failure, got %#v", out)
	}
	if !strings.Contains(out.Message, "too tired to work") {
		t.Fatalf("unexpected message %q", out.Message)
	}
	if tired.State() != before {
		t.Fatalf("state changed on failure")
	}
}

func TestPlay_EffectsAndRejections(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	p := eng.NewPet("Tom", "cat")

	out := p.Play(10)
	if !out.OK {
		t.Fatalf("expected play ok, got %#v", out)
	}
	st := p.State()
	if !approx(st.Energy, 95) || !approx(st.Happiness, 66) || st.Coins != 51 || st.XP != 17 {
		t.Fatalf("unexpected state after play: %#v", st)
	}

	if out := p.Play(-5); out.Reason != ReasonInvalidInput {
		t.Fatalf("expected invalid input, got %#v", out)
	}

	tired := restored(eng, func(s *State) { s.Energy = 4 })
	before := tired.State()
	if out := tired.Play(10); out.OK || out.Reason != ReasonPreconditionFailed {
		t.Fatalf("expected tired failure, got %#v", out)
	}
	if tired.State() != before {
		t.Fatalf("state changed on failure")
	}
}

func TestPlay_RepeatedCallsLevelUpOncePerHundredXP(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	p := eng.NewPet("Tom", "cat")

	totalXP := 0
	for i := 1; i <= 12; i++ {
		levelBefore := p.State().Level
		if out := p.Play(10); !out.OK {
			t.Fatalf("play #%d failed: %s", i, out.Message)
		}
		totalXP += 17

		st := p.State()
		if st.XP < 0 || st.XP >= 100 {
			t.Fatalf("xp out of range after play #%d: %d", i, st.XP)
		}
		if st.Level < levelBefore {
			t.Fatalf("level decreased")
		}
		wantLevel := 1 + totalXP/100
		if st.Level != wantLevel {
			t.Fatalf("play #%d: expected level %d, got %d", i, wantLevel, st.Level)
		}
		wantCoins := 50 + i + 20*(wantLevel-1)
		if st.Coins != wantCoins {
			t.Fatalf("play #%d: expected coins %d, got %d", i, wantCoins, st.Coins)
		}
	}

	st := p.State()
	if st.Level != 3 || st.XP != 4 || !approx(st.Energy, 40) {
		t.Fatalf("unexpected final state: %#v", st)
	}
}

func TestRest_ClampsToMaxEnergy(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	p := restored(eng, func(s *State) { s.Energy = 90 })

	out := p.Rest(30)
	if !out.OK {
		t.Fatalf("expected rest ok, got %#v", out)
	}
	st := p.State()
	if st.Energy != 100 || !approx(st.Happiness, 60.9) || st.Coins != 51 || st.XP != 0 {
		t.Fatalf("unexpected state after rest: %#v", st)
	}
	if out := p.Rest(0); out.Reason != ReasonInvalidInput {
		t.Fatalf("expected invalid input, got %#v", out)
	}
}

func TestBuy_ItemKinds(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	food := eng.NewPet("Tom", "cat")
	if out := food.Buy("food"); !out.OK {
		t.Fatalf("buy food failed: %#v", out)
	}
	if st := food.State(); st.Coins != 45 || st.Hunger != 5 || st.Happiness != 65 || st.XP != 5 {
		t.Fatalf("unexpected state after food: %#v", st)
	}

	toy := eng.NewPet("Tom", "cat")
	if out := toy.Buy("toy"); !out.OK {
		t.Fatalf("buy toy failed: %#v", out)
	}
	if st := toy.State(); st.Coins != 40 || st.Energy != 95 || st.Happiness != 80 || st.XP != 10 {
		t.Fatalf("unexpected state after toy: %#v", st)
	}

	drink := restored(eng, func(s *State) { s.Energy = 50 })
	out := drink.Buy("energy_drink")
	if !out.OK {
		t.Fatalf("buy drink failed: %#v", out)
	}
	if st := drink.State(); st.Coins != 42 || st.Energy != 80 || st.Happiness != 62 || st.XP != 7 {
		t.Fatalf("unexpected state after drink: %#v", st)
	}
	if out.Message != "Drank energy drink. Energy -> 80.0" {
		t.Fatalf("unexpected message %q", out.Message)
	}
}

func TestBuy_Rejections_AreAtomic(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	p := eng.NewPet("Tom", "cat")
	before := p.State()
	if out := p.Buy("bone"); out.OK || out.Reason != ReasonInvalidInput || out.Message != "Invalid item." {
		t.Fatalf("expected invalid item, got %#v", out)
	}
	if p.State() != before {
		t.Fatalf("state changed on invalid item")
	}

	poor := restored(eng, func(s *State) { s.Coins = 7 })
	before = poor.State()
	if out := poor.Buy("energy_drink"); out.OK || out.Reason != ReasonPreconditionFailed {
		t.Fatalf("expected not enough coins, got %#v", out)
	}
	if poor.State() != before {
		t.Fatalf("state changed on not enough coins")
	}

	// Juguete sin energía: no se cobra nada.
	tired := restored(eng, func(s *State) { s.Energy = 4 })
	before = tired.State()
	out := tired.Buy("toy")
	if out.OK || out.Reason != ReasonPreconditionFailed {
		t.Fatalf("expected tired failure, got %#v", out)
	}
	if out.Message != "Tom is too tired to use the toy." {
		t.Fatalf("unexpected message %q", out.Message)
	}
	if tired.State() != before {
		t.Fatalf("coins or energy changed on tired toy")
	}
}

func TestClaimDaily_OncePerCalendarDay(t *testing.T) {
	eng, clock := newTestEngine(t, nil)
	p := eng.NewPet("Tom", "cat")

	if out := p.ClaimDaily(); !out.OK || p.State().Coins != 70 {
		t.Fatalf("expected first claim ok with 70 coins, got %#v coins=%d", out, p.State().Coins)
	}

	clock.Advance(time.Hour)
	coins := p.State().Coins
	out := p.ClaimDaily()
	if out.OK || out.Reason != ReasonPreconditionFailed {
		t.Fatalf("expected second claim to fail, got %#v", out)
	}
	if !strings.Contains(out.Message, "already claimed") {
		t.Fatalf("unexpected message %q", out.Message)
	}
	if p.State().Coins != coins {
		t.Fatalf("coins changed on failed claim")
	}

	// 10:00 + 1h + 13h = 00:00 del día siguiente
	clock.Advance(13 * time.Hour)
	if out := p.ClaimDaily(); !out.OK {
		t.Fatalf("expected claim on next day, got %#v", out)
	}
	if !p.State().LastDailyClaim.Equal(clock.Now()) {
		t.Fatalf("expected claim timestamp = now")
	}
}

func TestClaimDaily_UsesEngineLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	clock := &manualClock{t: time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)} // 18:00 local
	eng := NewEngine(catalog.Default(), WithClock(clock), WithRand(noGift()), WithLocation(loc))
	p := eng.NewPet("Tom", "cat")

	p.ClaimDaily()
	clock.Advance(2 * time.Hour) // 01:00 UTC del 11, pero 20:00 local del 10
	if out := p.ClaimDaily(); out.OK {
		t.Fatalf("expected same local day to reject claim")
	}
}

// -------------------------
// Nivel y evolución
// -------------------------

func TestGainXP_MultipleLevelUpsAndEvolution(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	p := restored(eng, func(s *State) { s.Level = 4 })

	p.gainXP(250)

	st := p.State()
	if st.Level != 6 || st.XP != 50 || st.Coins != 90 {
		t.Fatalf("expected level 6 xp 50 coins 90, got %#v", st)
	}
	if !st.Evolved || st.DisplayForm() != "Big Cat" {
		t.Fatalf("expected evolution to Big Cat, got %#v", st)
	}

	notices := p.TakeNotices()
	kinds := make([]string, 0, len(notices))
	for _, n := range notices {
		kinds = append(kinds, n.Kind)
	}
	if strings.Join(kinds, ",") != "level_up,level_up,evolved" {
		t.Fatalf("unexpected notices: %v", kinds)
	}
	if len(p.TakeNotices()) != 0 {
		t.Fatalf("expected notices to be drained")
	}
}

func TestEvolution_OnlyOnLevelUpAndNeverReverts(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	// Nivel ya por encima del umbral pero sin subir: no evoluciona todavía.
	p := restored(eng, func(s *State) { s.Level = 7 })
	p.gainXP(10)
	if p.State().Evolved {
		t.Fatalf("expected no evolution without a level-up")
	}
	p.gainXP(95)
	if !p.State().Evolved {
		t.Fatalf("expected evolution on level-up")
	}

	evolved := restored(eng, func(s *State) { s.Evolved = true })
	evolved.Feed()
	evolved.Play(10)
	if !evolved.State().Evolved {
		t.Fatalf("evolved reverted")
	}
}

func TestDisplayForm_FallsBackToSpecies(t *testing.T) {
	st := State{Species: "cat", Evolved: true}
	if st.DisplayForm() != "cat" {
		t.Fatalf("expected species when evolution name is empty")
	}
	st.Evolution = "Big Cat"
	if st.DisplayForm() != "Big Cat" {
		t.Fatalf("expected evolution name")
	}
}

// -------------------------
// Decaimiento y regalo
// -------------------------

func TestRefresh_DecayRates(t *testing.T) {
	eng, clock := newTestEngine(t, nil)
	p := eng.NewPet("Tom", "cat")

	clock.Advance(10 * time.Hour)
	p.Refresh()
	st := p.State()
	if !approx(st.Hunger, 50) || st.Energy != 100 || st.Happiness != 60 {
		t.Fatalf("unexpected state after 10h: %#v", st)
	}

	// hunger 50 -> 80 > 70: la felicidad empieza a bajar
	clock.Advance(15 * time.Hour)
	p.Refresh()
	st = p.State()
	if !approx(st.Hunger, 80) || !approx(st.Happiness, 52.5) {
		t.Fatalf("unexpected state after 25h: %#v", st)
	}
	if !st.LastUpdated.Equal(clock.Now()) {
		t.Fatalf("expected LastUpdated advanced")
	}

	clock.Advance(1000 * time.Hour)
	p.Refresh()
	st = p.State()
	if st.Hunger != 100 || st.Happiness != 0 {
		t.Fatalf("expected clamps after long absence, got %#v", st)
	}
}

func TestRefresh_LowEnergyIsNeglect(t *testing.T) {
	eng, clock := newTestEngine(t, nil)
	p := restored(eng, func(s *State) { s.Energy = 10 })

	clock.Advance(time.Hour)
	p.Refresh()
	st := p.State()
	if !approx(st.Energy, 11) || !approx(st.Happiness, 59.5) {
		t.Fatalf("expected neglect decay, got %#v", st)
	}
}

func TestRefresh_IdempotentWithoutElapsedTime(t *testing.T) {
	// Con este rand siempre habría regalo: sin tiempo transcurrido no debe sortearse.
	eng, _ := newTestEngine(t, &stubRand{f: 0})
	p := eng.NewPet("Tom", "cat")

	before := p.State()
	p.Refresh()
	p.Refresh()
	if p.State() != before {
		t.Fatalf("expected no change without elapsed time")
	}
}

func TestRefresh_ClockSkewIsNoop(t *testing.T) {
	eng, clock := newTestEngine(t, &stubRand{f: 0})
	p := eng.NewPet("Tom", "cat")
	before := p.State()

	clock.Advance(-3 * time.Hour)
	p.Refresh()
	if p.State() != before {
		t.Fatalf("expected no change when clock moves backwards")
	}
}

func TestRefresh_GiftRollAndStatusMessage(t *testing.T) {
	rnd := &stubRand{f: 0.01, n: 2}
	eng, clock := newTestEngine(t, rnd)
	p := eng.NewPet("Tom", "cat")

	clock.Advance(time.Minute)
	snap := p.Status()
	if snap.Coins != 53 {
		t.Fatalf("expected gift of 3 coins, got %d", snap.Coins)
	}
	if snap.GiftMessage == nil || *snap.GiftMessage != "Found 3 coins!" {
		t.Fatalf("expected gift message, got %v", snap.GiftMessage)
	}
	if n := p.TakeNotices(); len(n) != 1 || n[0].Kind != NoticeGift {
		t.Fatalf("expected gift notice, got %#v", n)
	}

	rnd.f = 0.99
	clock.Advance(6 * time.Second)
	snap = p.Status()
	if snap.GiftMessage != nil {
		t.Fatalf("expected gift message to expire, got %q", *snap.GiftMessage)
	}
	if snap.Coins != 53 {
		t.Fatalf("expected no second gift, got %d", snap.Coins)
	}
}

func TestStatus_RoundsAndReportsClaim(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	p := restored(eng, func(s *State) { s.Hunger = 33.349; s.Happiness = 12.25; s.Energy = 70.06 })

	snap := p.Status()
	if snap.Hunger != 33.3 || snap.Happiness != 12.3 || snap.Energy != 70.1 {
		t.Fatalf("unexpected rounding: %#v", snap)
	}
	if snap.LastDailyClaim != nil || snap.DisplayForm != "cat" {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}

	p.ClaimDaily()
	if snap := p.Status(); snap.LastDailyClaim == nil {
		t.Fatalf("expected last daily claim after claiming")
	}
}

// -------------------------
// Propiedades
// -------------------------

func TestProperties_RandomActionSequence(t *testing.T) {
	src := rand.New(rand.NewPCG(7, 11))
	eng, clock := newTestEngine(t, rand.New(rand.NewPCG(3, 5)))
	p := eng.NewPet("Tom", "dragon")

	items := []string{"food", "toy", "energy_drink", "bone"}
	for i := 0; i < 2000; i++ {
		clock.Advance(time.Duration(src.IntN(4*3600)) * time.Second)
		p.Refresh()
		before := p.State()

		var out Outcome
		switch src.IntN(6) {
		case 0:
			out = p.Feed()
		case 1:
			out = p.Play(src.IntN(60) - 5)
		case 2:
			out = p.Rest(src.IntN(60))
		case 3:
			out = p.Work(src.IntN(200) - 10)
		case 4:
			out = p.Buy(items[src.IntN(len(items))])
		default:
			out = p.ClaimDaily()
		}

		st := p.State()
		if st.Hunger < 0 || st.Hunger > 100 || st.Happiness < 0 || st.Happiness > 100 {
			t.Fatalf("step %d: bounded stat out of range: %#v", i, st)
		}
		if st.Energy < 0 || st.Energy > st.MaxEnergy {
			t.Fatalf("step %d: energy out of range: %#v", i, st)
		}
		if st.XP < 0 || st.XP >= 100 {
			t.Fatalf("step %d: xp not normalized: %d", i, st.XP)
		}
		if st.Coins < 0 {
			t.Fatalf("step %d: negative coins", i)
		}
		if st.Level < before.Level || (before.Evolved && !st.Evolved) {
			t.Fatalf("step %d: progression went backwards", i)
		}
		if !out.OK && st != before {
			t.Fatalf("step %d: failed action %q mutated state", i, out.Message)
		}
	}
}
