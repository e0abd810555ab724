package configs

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/ecs/component"
)

// EnemyType is one resolved enemy entry. All intervals are frames.
type EnemyType struct {
	Key             string
	Health          int
	Speed           float64
	Score           int
	FireInterval    int
	CollisionDamage int
	Movement        component.MovementPattern
	Amplitude       float64
	Frequency       float64
	Attack          component.AttackPattern
	BurstCount      int
	Projectile      string
	Width           float64
	Height          float64
	Tint            color.Color
	CreditsMin      int
	CreditsMax      int
	Drops           []component.DropEntry
}

type ProjectileType struct {
	Key       string
	Speed     float64
	Direction int
	Damage    int
	Piercing  bool
	Radius    float64
	Tint      color.Color
}

// FirePattern selects the player weapon's bullet layout per upgrade level.
type FirePattern uint8

const (
	FireSingle FirePattern = iota
	FireDual
	FireSpread
	FireBurst
)

type WeaponLevel struct {
	Pattern       FirePattern
	Bullets       int
	RateMult      float64
	SpreadDegrees float64
	Offset        float64
}

type WeaponType struct {
	Key          string
	Projectile   string
	FireInterval int
	Levels       []WeaponLevel
}

type FormationType struct {
	Key      string
	Slots    [][2]float64
	MinShips int
	MaxShips int
	Types    map[string]float64
}

type PowerUpType struct {
	Key       string
	Label     string
	Tint      color.Color
	Effect    component.PowerUpEffect
	Heal      int
	SpeedMult float64
	Duration  int
	Weapon    string
}

type BossType struct {
	Key             string
	Health          int
	Score           int
	PatrolSpeed     float64
	EntrySpeed      float64
	MovementRange   float64
	TargetY         float64
	DeathFrames     int
	Phase2Threshold float64
	Phase3Threshold float64
	Phase3SpeedMult float64
	ContactDamage   int
	Projectile      string
	Width           float64
	Height          float64
	Tints           [3]color.Color
	Summons         []string
	Attacks         []component.BossAttack
}

// Tuning is the resolved global tuning table. Durations are frames.
type Tuning struct {
	ScreenMargin float64
	SlotSpacing  float64

	MinSpawnInterval int
	MaxSpawnInterval int
	DefaultTypes     map[string]float64

	DifficultyInterval   int
	DifficultyStep       float64
	IntervalDecay        int
	MinIntervalFloor     int
	MaxIntervalFloor     int
	MinEnemyFireInterval int

	MineInterval      int
	MineIntervalDecay int
	MineIntervalFloor int
	MineHits          int
	MineDamage        int
	MineTriggerRadius float64
	MineBlastRadius   float64
	MineSpeed         float64

	BossFirstDelay int
	BossInterval   int
	BossGrace      int
	BossOrder      []string

	PlayerHealth  int
	PlayerLives   int
	PlayerSpeed   float64
	PlayerWeapon  string
	ContactInvuln int

	DropChance float64
	CoinValue  int

	PoolPlayerBullets int
	PoolEnemyBullets  int
	PoolMines         int
	PoolPowerUps      int
	PoolCoins         int

	DefaultEnemy string
}

// Registry holds every resolved config table. It is immutable after load;
// systems only read from it.
type Registry struct {
	Enemies     map[string]EnemyType
	Projectiles map[string]ProjectileType
	Weapons     map[string]WeaponType
	Formations  map[string]FormationType
	PowerUps    map[string]PowerUpType
	Bosses      map[string]BossType
	Tuning      Tuning

	// Sorted key lists for uniform random picks.
	FormationKeys []string
	PowerUpKeys   []string
}

// LoadRegistry reads, resolves, and validates every config table.
func LoadRegistry() (*Registry, error) {
	enemies, err := LoadSpec[map[string]EnemySpec]("enemies.yaml")
	if err != nil {
		return nil, err
	}
	projectiles, err := LoadSpec[map[string]ProjectileSpec]("projectiles.yaml")
	if err != nil {
		return nil, err
	}
	weapons, err := LoadSpec[map[string]WeaponSpec]("weapons.yaml")
	if err != nil {
		return nil, err
	}
	formations, err := LoadSpec[map[string]FormationSpec]("formations.yaml")
	if err != nil {
		return nil, err
	}
	powerups, err := LoadSpec[map[string]PowerUpSpec]("powerups.yaml")
	if err != nil {
		return nil, err
	}
	bosses, err := LoadSpec[map[string]BossSpec]("bosses.yaml")
	if err != nil {
		return nil, err
	}
	tuning, err := LoadSpec[TuningSpec]("tuning.yaml")
	if err != nil {
		return nil, err
	}

	r := &Registry{
		Enemies:     make(map[string]EnemyType, len(enemies)),
		Projectiles: make(map[string]ProjectileType, len(projectiles)),
		Weapons:     make(map[string]WeaponType, len(weapons)),
		Formations:  make(map[string]FormationType, len(formations)),
		PowerUps:    make(map[string]PowerUpType, len(powerups)),
		Bosses:      make(map[string]BossType, len(bosses)),
	}

	for key, spec := range enemies {
		r.Enemies[key] = resolveEnemy(key, spec)
	}
	for key, spec := range projectiles {
		dir := spec.Direction
		if dir == 0 {
			dir = 1
		}
		r.Projectiles[key] = ProjectileType{
			Key:       key,
			Speed:     spec.Speed,
			Direction: dir,
			Damage:    spec.Damage,
			Piercing:  spec.Piercing,
			Radius:    spec.Radius,
			Tint:      tintOrWhite(spec.Tint),
		}
	}
	for key, spec := range weapons {
		r.Weapons[key] = resolveWeapon(key, spec)
	}
	for key, spec := range formations {
		r.Formations[key] = resolveFormation(key, spec)
		r.FormationKeys = append(r.FormationKeys, key)
	}
	for key, spec := range powerups {
		r.PowerUps[key] = resolvePowerUp(key, spec)
		r.PowerUpKeys = append(r.PowerUpKeys, key)
	}
	for key, spec := range bosses {
		r.Bosses[key] = resolveBoss(key, spec)
	}
	sort.Strings(r.FormationKeys)
	sort.Strings(r.PowerUpKeys)

	r.Tuning = resolveTuning(tuning)

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func resolveEnemy(key string, spec EnemySpec) EnemyType {
	e := EnemyType{
		Key:             key,
		Health:          spec.Health,
		Speed:           spec.Speed,
		Score:           spec.Score,
		FireInterval:    common.SecondsToFrames(spec.FireInterval),
		CollisionDamage: spec.CollisionDamage,
		Movement:        parseMovement(key, spec.Movement),
		Amplitude:       spec.Amplitude,
		Frequency:       spec.Frequency,
		Attack:          parseAttack(key, spec.Attack),
		BurstCount:      spec.BurstCount,
		Projectile:      spec.Projectile,
		Width:           28,
		Height:          28,
		Tint:            tintOrWhite(spec.Tint),
	}
	if len(spec.Size) == 2 {
		e.Width, e.Height = spec.Size[0], spec.Size[1]
	}
	if len(spec.Loot.Credits) == 2 {
		e.CreditsMin, e.CreditsMax = spec.Loot.Credits[0], spec.Loot.Credits[1]
	}
	for _, d := range spec.Loot.Drops {
		e.Drops = append(e.Drops, component.DropEntry{PowerUp: d.PowerUp, Weight: d.Weight})
	}
	if e.BurstCount <= 0 && e.Attack == component.AttackBurst {
		e.BurstCount = 3
	}
	return e
}

func resolveWeapon(key string, spec WeaponSpec) WeaponType {
	w := WeaponType{
		Key:          key,
		Projectile:   spec.Projectile,
		FireInterval: common.SecondsToFrames(spec.FireInterval),
	}
	for _, lvl := range spec.Levels {
		rate := lvl.RateMult
		if rate <= 0 {
			rate = 1
		}
		bullets := lvl.Bullets
		if bullets <= 0 {
			bullets = 1
		}
		w.Levels = append(w.Levels, WeaponLevel{
			Pattern:       parseFirePattern(key, lvl.Pattern),
			Bullets:       bullets,
			RateMult:      rate,
			SpreadDegrees: lvl.Spread,
			Offset:        lvl.Offset,
		})
	}
	if len(w.Levels) == 0 {
		w.Levels = []WeaponLevel{{Pattern: FireSingle, Bullets: 1, RateMult: 1}}
	}
	return w
}

func resolveFormation(key string, spec FormationSpec) FormationType {
	f := FormationType{
		Key:      key,
		MinShips: spec.MinShips,
		MaxShips: spec.MaxShips,
		Types:    spec.Types,
	}
	for _, slot := range spec.Slots {
		if len(slot) != 2 {
			log.Printf("configs: formation %s has malformed slot %v, skipping", key, slot)
			continue
		}
		f.Slots = append(f.Slots, [2]float64{slot[0], slot[1]})
	}
	return f
}

func resolvePowerUp(key string, spec PowerUpSpec) PowerUpType {
	p := PowerUpType{
		Key:   key,
		Label: spec.Label,
		Tint:  tintOrWhite(spec.Tint),
	}
	switch {
	case spec.Effect.Heal > 0:
		p.Effect = component.EffectHeal
		p.Heal = spec.Effect.Heal
	case spec.Effect.Speed > 0:
		p.Effect = component.EffectSpeed
		p.SpeedMult = spec.Effect.Speed
		p.Duration = common.SecondsToFrames(spec.Effect.Duration)
	case spec.Effect.Shield > 0:
		p.Effect = component.EffectShield
		p.Duration = common.SecondsToFrames(spec.Effect.Shield)
	case spec.Effect.Weapon != "":
		p.Effect = component.EffectWeapon
		p.Weapon = spec.Effect.Weapon
	}
	return p
}

func resolveBoss(key string, spec BossSpec) BossType {
	b := BossType{
		Key:             key,
		Health:          spec.Health,
		Score:           spec.Score,
		PatrolSpeed:     spec.Speed,
		EntrySpeed:      spec.EntrySpeed,
		MovementRange:   spec.MovementRange,
		TargetY:         spec.TargetY,
		DeathFrames:     common.SecondsToFrames(spec.DeathSeconds),
		Phase2Threshold: spec.Phase2Threshold,
		Phase3Threshold: spec.Phase3Threshold,
		Phase3SpeedMult: spec.Phase3SpeedMult,
		ContactDamage:   spec.ContactDamage,
		Projectile:      spec.Projectile,
		Width:           96,
		Height:          72,
		Summons:         spec.Summons,
	}
	if len(spec.Size) == 2 {
		b.Width, b.Height = spec.Size[0], spec.Size[1]
	}
	if b.EntrySpeed <= 0 {
		b.EntrySpeed = 1.5
	}
	if b.Phase3SpeedMult <= 0 || b.Phase3SpeedMult > 1 {
		b.Phase3SpeedMult = 0.6
	}
	if b.ContactDamage <= 0 {
		b.ContactDamage = 1
	}
	if b.DeathFrames <= 0 {
		b.DeathFrames = 2 * common.TPS
	}
	for i := range b.Tints {
		b.Tints[i] = color.Color(color.White)
		if i < len(spec.Tints) && spec.Tints[i] != nil {
			b.Tints[i] = spec.Tints[i].Color
		} else if i > 0 {
			b.Tints[i] = b.Tints[i-1]
		}
	}

	for _, a := range spec.Attacks {
		b.Attacks = append(b.Attacks, resolveBossAttack(key, a, spec.CooldownMults, 0))
	}
	for _, a := range spec.Phase3Attacks {
		b.Attacks = append(b.Attacks, resolveBossAttack(key, a, spec.CooldownMults, 3))
	}
	// Fixed selection priority: spray, aimed, summon, ring, script.
	sort.SliceStable(b.Attacks, func(i, j int) bool {
		return b.Attacks[i].Kind < b.Attacks[j].Kind
	})
	return b
}

func resolveBossAttack(bossKey string, spec BossAttackSpec, mults map[string]float64, forcePhase int) component.BossAttack {
	kind := parseBossAttackKind(bossKey, spec.Kind)
	a := component.BossAttack{
		Kind:        kind,
		MinPhase:    1,
		Bullets:     spec.Bullets,
		ArcDegrees:  spec.Arc,
		SpreadX:     spec.Spread,
		Script:      spec.Script,
		SummonType:  spec.Type,
		SummonCount: spec.Count,
	}
	if kind == component.BossAttackSummon {
		a.MinPhase = 2
		if a.SummonCount <= 0 {
			a.SummonCount = 2
		}
	}
	if forcePhase > a.MinPhase {
		a.MinPhase = forcePhase
	}
	if a.Bullets <= 0 {
		a.Bullets = 1
	}
	cooldown := spec.Cooldown
	if mult, ok := mults[spec.Kind]; ok && mult > 0 {
		cooldown *= mult
	}
	a.Cooldown = common.SecondsToFrames(cooldown)
	if a.Cooldown <= 0 {
		a.Cooldown = 2 * common.TPS
	}
	return a
}

func resolveTuning(spec TuningSpec) Tuning {
	t := Tuning{
		ScreenMargin: spec.ScreenMargin,
		SlotSpacing:  spec.Spawn.Spacing,

		MinSpawnInterval: common.SecondsToFrames(spec.Spawn.MinInterval),
		MaxSpawnInterval: common.SecondsToFrames(spec.Spawn.MaxInterval),
		DefaultTypes:     spec.Spawn.DefaultTypes,

		DifficultyInterval:   common.SecondsToFrames(spec.Difficulty.Interval),
		DifficultyStep:       spec.Difficulty.Step,
		IntervalDecay:        common.SecondsToFrames(spec.Difficulty.IntervalDecay),
		MinIntervalFloor:     common.SecondsToFrames(spec.Difficulty.MinIntervalFloor),
		MaxIntervalFloor:     common.SecondsToFrames(spec.Difficulty.MaxIntervalFloor),
		MinEnemyFireInterval: common.SecondsToFrames(spec.Difficulty.MinEnemyFireSeconds),

		MineInterval:      common.SecondsToFrames(spec.Mines.Interval),
		MineIntervalDecay: common.SecondsToFrames(spec.Mines.IntervalDecay),
		MineIntervalFloor: common.SecondsToFrames(spec.Mines.IntervalFloor),
		MineHits:          spec.Mines.Hits,
		MineDamage:        spec.Mines.Damage,
		MineTriggerRadius: spec.Mines.TriggerRadius,
		MineBlastRadius:   spec.Mines.BlastRadius,
		MineSpeed:         spec.Mines.Speed,

		BossFirstDelay: common.SecondsToFrames(spec.Boss.FirstDelay),
		BossInterval:   common.SecondsToFrames(spec.Boss.Interval),
		BossGrace:      common.SecondsToFrames(spec.Boss.Grace),
		BossOrder:      spec.Boss.Order,

		PlayerHealth:  spec.Player.Health,
		PlayerLives:   spec.Player.Lives,
		PlayerSpeed:   spec.Player.Speed,
		PlayerWeapon:  spec.Player.Weapon,
		ContactInvuln: common.SecondsToFrames(spec.Player.ContactInvuln),

		DropChance: spec.Drops.Chance,
		CoinValue:  spec.Drops.CoinValue,

		PoolPlayerBullets: spec.Pools.PlayerBullets,
		PoolEnemyBullets:  spec.Pools.EnemyBullets,
		PoolMines:         spec.Pools.Mines,
		PoolPowerUps:      spec.Pools.PowerUps,
		PoolCoins:         spec.Pools.Coins,

		DefaultEnemy: spec.DefaultEnemy,
	}
	if t.MineHits <= 0 {
		t.MineHits = 1
	}
	if t.CoinValue <= 0 {
		t.CoinValue = 1
	}
	return t
}

func parseMovement(key, s string) component.MovementPattern {
	switch s {
	case "straight", "":
		return component.MoveStraight
	case "sine":
		return component.MoveSine
	case "zigzag":
		return component.MoveZigzag
	case "dive":
		return component.MoveDive
	}
	log.Printf("configs: enemy %s has unknown movement %q, using straight", key, s)
	return component.MoveStraight
}

func parseAttack(key, s string) component.AttackPattern {
	switch s {
	case "none", "":
		return component.AttackNone
	case "basic":
		return component.AttackBasic
	case "aimed":
		return component.AttackAimed
	case "burst":
		return component.AttackBurst
	}
	log.Printf("configs: enemy %s has unknown attack %q, using none", key, s)
	return component.AttackNone
}

func parseFirePattern(key, s string) FirePattern {
	switch s {
	case "single", "":
		return FireSingle
	case "dual":
		return FireDual
	case "spread":
		return FireSpread
	case "burst":
		return FireBurst
	}
	log.Printf("configs: weapon %s has unknown pattern %q, using single", key, s)
	return FireSingle
}

func parseBossAttackKind(key, s string) component.BossAttackKind {
	switch s {
	case "spray", "":
		return component.BossAttackSpray
	case "aimed":
		return component.BossAttackAimed
	case "summon":
		return component.BossAttackSummon
	case "ring":
		return component.BossAttackRing
	case "script":
		return component.BossAttackScript
	}
	log.Printf("configs: boss %s has unknown attack kind %q, using spray", key, s)
	return component.BossAttackSpray
}

func tintOrWhite(c *YAMLColor) color.Color {
	if c == nil || c.Color == nil {
		return color.White
	}
	return c.Color
}

// Enemy returns the enemy entry for key.
func (r *Registry) Enemy(key string) (EnemyType, bool) {
	e, ok := r.Enemies[key]
	return e, ok
}

// EnemyOrDefault resolves key with a logged fallback to the default enemy
// type. Unknown keys never halt the session.
func (r *Registry) EnemyOrDefault(key string) EnemyType {
	if e, ok := r.Enemies[key]; ok {
		return e
	}
	log.Printf("configs: unknown enemy type %q, falling back to %q", key, r.Tuning.DefaultEnemy)
	if e, ok := r.Enemies[r.Tuning.DefaultEnemy]; ok {
		return e
	}
	// Last resort: any entry, in sorted key order for determinism.
	keys := make([]string, 0, len(r.Enemies))
	for k := range r.Enemies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		return r.Enemies[keys[0]]
	}
	return EnemyType{Key: key, Health: 1, Speed: 1, Width: 28, Height: 28, Tint: color.White}
}

// Projectile returns the projectile entry for key.
func (r *Registry) Projectile(key string) (ProjectileType, bool) {
	p, ok := r.Projectiles[key]
	return p, ok
}

// Weapon returns the weapon entry for key.
func (r *Registry) Weapon(key string) (WeaponType, bool) {
	w, ok := r.Weapons[key]
	return w, ok
}

// Formation returns the formation entry for key.
func (r *Registry) Formation(key string) (FormationType, bool) {
	f, ok := r.Formations[key]
	return f, ok
}

// PowerUp returns the power-up entry for key.
func (r *Registry) PowerUp(key string) (PowerUpType, bool) {
	p, ok := r.PowerUps[key]
	return p, ok
}

// Boss returns the boss entry for key.
func (r *Registry) Boss(key string) (BossType, bool) {
	b, ok := r.Bosses[key]
	return b, ok
}

// Validate checks cross-reference integrity between tables. Violations are
// data defects caught at load/test time, not runtime conditions.
func (r *Registry) Validate() error {
	for key, e := range r.Enemies {
		if e.Attack != component.AttackNone {
			if _, ok := r.Projectiles[e.Projectile]; !ok {
				return fmt.Errorf("configs: enemy %s references unknown projectile %q", key, e.Projectile)
			}
		}
		if e.CreditsMin > e.CreditsMax {
			return fmt.Errorf("configs: enemy %s has credit range [%d, %d]", key, e.CreditsMin, e.CreditsMax)
		}
		for _, d := range e.Drops {
			if _, ok := r.PowerUps[d.PowerUp]; !ok {
				return fmt.Errorf("configs: enemy %s drop table references unknown powerup %q", key, d.PowerUp)
			}
			if d.Weight < 0 {
				return fmt.Errorf("configs: enemy %s drop %q has negative weight", key, d.PowerUp)
			}
		}
	}
	for key, w := range r.Weapons {
		if _, ok := r.Projectiles[w.Projectile]; !ok {
			return fmt.Errorf("configs: weapon %s references unknown projectile %q", key, w.Projectile)
		}
	}
	for key, f := range r.Formations {
		if len(f.Slots) == 0 {
			return fmt.Errorf("configs: formation %s has no slots", key)
		}
		if f.MaxShips > len(f.Slots) {
			return fmt.Errorf("configs: formation %s max_ships %d exceeds slot count %d", key, f.MaxShips, len(f.Slots))
		}
		if f.MinShips > f.MaxShips && f.MaxShips > 0 {
			return fmt.Errorf("configs: formation %s min_ships %d exceeds max_ships %d", key, f.MinShips, f.MaxShips)
		}
		for typ := range f.Types {
			if _, ok := r.Enemies[typ]; !ok {
				return fmt.Errorf("configs: formation %s references unknown enemy type %q", key, typ)
			}
		}
	}
	for key, p := range r.PowerUps {
		if p.Effect == component.EffectWeapon {
			if _, ok := r.Weapons[p.Weapon]; !ok {
				return fmt.Errorf("configs: powerup %s references unknown weapon %q", key, p.Weapon)
			}
		}
	}
	for key, b := range r.Bosses {
		if _, ok := r.Projectiles[b.Projectile]; !ok {
			return fmt.Errorf("configs: boss %s references unknown projectile %q", key, b.Projectile)
		}
		if b.Phase3Threshold >= b.Phase2Threshold {
			return fmt.Errorf("configs: boss %s phase thresholds must decrease (%v >= %v)", key, b.Phase3Threshold, b.Phase2Threshold)
		}
		for _, s := range b.Summons {
			if _, ok := r.Enemies[s]; !ok {
				return fmt.Errorf("configs: boss %s references unknown summon type %q", key, s)
			}
		}
		for _, a := range b.Attacks {
			if a.Kind == component.BossAttackSummon && a.SummonType != "" {
				if _, ok := r.Enemies[a.SummonType]; !ok {
					return fmt.Errorf("configs: boss %s summon attack references unknown enemy type %q", key, a.SummonType)
				}
			}
			if a.Kind == component.BossAttackScript {
				if _, err := LoadScript(a.Script); err != nil {
					return fmt.Errorf("configs: boss %s script attack %q: %w", key, a.Script, err)
				}
			}
		}
	}
	for typ := range r.Tuning.DefaultTypes {
		if _, ok := r.Enemies[typ]; !ok {
			return fmt.Errorf("configs: spawn default types reference unknown enemy type %q", typ)
		}
	}
	for _, key := range r.Tuning.BossOrder {
		if _, ok := r.Bosses[key]; !ok {
			return fmt.Errorf("configs: boss order references unknown boss %q", key)
		}
	}
	if _, ok := r.Weapons[r.Tuning.PlayerWeapon]; !ok {
		return fmt.Errorf("configs: player weapon %q not in weapon table", r.Tuning.PlayerWeapon)
	}
	if _, ok := r.Enemies[r.Tuning.DefaultEnemy]; !ok {
		return fmt.Errorf("configs: default enemy %q not in enemy table", r.Tuning.DefaultEnemy)
	}
	return nil
}
