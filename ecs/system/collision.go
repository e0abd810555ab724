package system

import (
	"math/rand"

	"github.com/milk9111/starblitz/common"
	"github.com/milk9111/starblitz/configs"
	"github.com/milk9111/starblitz/ecs"
	"github.com/milk9111/starblitz/ecs/component"
	"github.com/milk9111/starblitz/ecs/entity"
	"github.com/milk9111/starblitz/ecs/event"
)

const respawnInvulnFrames = 2 * common.TPS

// CollisionSystem resolves the tick's overlap pairs. Dispatch is on body
// kind pairs; every outcome that touches the session ledger goes through
// the event bus rather than mutating the ledger directly. Pooled entities
// use their Active flag as the idempotence guard, so a slot hit by two
// contacts in one tick resolves once.
type CollisionSystem struct {
	registry *configs.Registry
	pools    *Pools
	rng      *rand.Rand
}

func NewCollisionSystem(registry *configs.Registry, pools *Pools, rng *rand.Rand) *CollisionSystem {
	return &CollisionSystem{registry: registry, pools: pools, rng: rng}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.registry == nil || s.pools == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	for _, c := range pw.CollectContacts() {
		switch c.KindA {
		case ecs.BodyPlayerBullet:
			s.resolveBulletHit(w, c)
		case ecs.BodyPlayer:
			s.resolvePlayerContact(w, c)
		}
	}
}

func (s *CollisionSystem) resolveBulletHit(w *ecs.World, c ecs.Contact) {
	bullet, ok := ecs.Get[component.Bullet](w, c.A, component.BulletComponent.Kind())
	if !ok || !bullet.Active {
		return
	}
	invuln := s.registry.Tuning.ContactInvuln
	spent := false

	switch c.KindB {
	case ecs.BodyEnemy:
		enemy, ok := ecs.Get[component.Enemy](w, c.B, component.EnemyComponent.Kind())
		if !ok {
			return
		}
		health, ok := ecs.Get[component.Health](w, c.B, component.HealthComponent.Kind())
		if !ok {
			return
		}
		health.Current -= bullet.Damage
		if health.Current <= 0 {
			s.killEnemy(w, c.B, enemy, true)
		} else {
			_ = ecs.Add(w, c.B, component.HealthComponent.Kind(), health)
		}
		spent = !bullet.Piercing

	case ecs.BodyMine:
		mine, ok := ecs.Get[component.Mine](w, c.B, component.MineComponent.Kind())
		if !ok || !mine.Active {
			return
		}
		mine.HitsLeft--
		if mine.HitsLeft <= 0 {
			if t, ok := ecs.Get[component.Transform](w, c.B, component.TransformComponent.Kind()); ok {
				DetonateMine(w, s.pools, c.B, mine, t, invuln)
			}
		} else {
			_ = ecs.Add(w, c.B, component.MineComponent.Kind(), mine)
		}
		spent = !bullet.Piercing

	case ecs.BodyBoss:
		rt, ok := ecs.Get[component.BossRuntime](w, c.B, component.BossRuntimeComponent.Kind())
		if !ok || rt.Dying {
			return
		}
		if health, ok := ecs.Get[component.Health](w, c.B, component.HealthComponent.Kind()); ok {
			health.Current -= bullet.Damage
			if health.Current < 0 {
				health.Current = 0
			}
			_ = ecs.Add(w, c.B, component.HealthComponent.Kind(), health)
		}
		spent = !bullet.Piercing
	}

	if spent {
		entity.ReleaseBullet(w, s.pools.PlayerBullets, c.A)
	}
}

func (s *CollisionSystem) resolvePlayerContact(w *ecs.World, c ecs.Contact) {
	// Only mine blasts and boss-body contact grant a grace window on
	// survival; bullet hits and rams leave the ship exposed.
	invuln := s.registry.Tuning.ContactInvuln

	switch c.KindB {
	case ecs.BodyEnemyBullet:
		bullet, ok := ecs.Get[component.Bullet](w, c.B, component.BulletComponent.Kind())
		if !ok || !bullet.Active {
			return
		}
		entity.ReleaseBullet(w, s.pools.EnemyBullets, c.B)
		DamagePlayer(w, bullet.Damage, 0)

	case ecs.BodyEnemy:
		enemy, ok := ecs.Get[component.Enemy](w, c.B, component.EnemyComponent.Kind())
		if !ok {
			return
		}
		damage := enemy.CollisionDamage
		// Ramming kills the enemy either way, but drops no loot.
		s.killEnemy(w, c.B, enemy, false)
		DamagePlayer(w, damage, 0)

	case ecs.BodyMine:
		mine, ok := ecs.Get[component.Mine](w, c.B, component.MineComponent.Kind())
		if !ok || !mine.Active {
			return
		}
		if t, ok := ecs.Get[component.Transform](w, c.B, component.TransformComponent.Kind()); ok {
			DetonateMine(w, s.pools, c.B, mine, t, invuln)
		}

	case ecs.BodyBoss:
		damage := 1
		if boss, ok := ecs.Get[component.Boss](w, c.B, component.BossComponent.Kind()); ok {
			damage = boss.ContactDamage
		}
		DamagePlayer(w, damage, invuln)

	case ecs.BodyPowerUp:
		s.collectPowerUp(w, c.B)

	case ecs.BodyCoin:
		coin, ok := ecs.Get[component.Coin](w, c.B, component.CoinComponent.Kind())
		if !ok || !coin.Active {
			return
		}
		if bus := w.Bus(); bus != nil {
			bus.Publish(event.Credits{Amount: coin.Value})
		}
		entity.ReleaseCoin(w, s.pools.Coins, c.B)
	}
}

// killEnemy settles an enemy death: ledger events, the credit roll, the
// loot roll when earned by a shot, and the entity itself.
func (s *CollisionSystem) killEnemy(w *ecs.World, e ecs.Entity, enemy *component.Enemy, loot bool) {
	x, y := 0.0, 0.0
	if t, ok := ecs.Get[component.Transform](w, e, component.TransformComponent.Kind()); ok {
		x, y = t.X, t.Y
	}

	if bus := w.Bus(); bus != nil {
		bus.Publish(event.Score{Points: enemy.Score})
		bus.Publish(event.EnemyKilled{Type: enemy.Type, X: x, Y: y})
		if credits := s.rollCredits(enemy); credits > 0 {
			bus.Publish(event.Credits{Amount: credits})
		}
		bus.Publish(event.Explosion{X: x, Y: y, Size: 16})
	}

	if loot {
		s.rollLoot(w, enemy, x, y)
	}
	ecs.DestroyEntity(w, e)
}

func (s *CollisionSystem) rollCredits(enemy *component.Enemy) int {
	if enemy.CreditsMax <= 0 {
		return 0
	}
	if enemy.CreditsMax <= enemy.CreditsMin {
		return enemy.CreditsMin
	}
	return enemy.CreditsMin + s.rng.Intn(enemy.CreditsMax-enemy.CreditsMin+1)
}

// rollLoot drops at most one pickup per kill: the tuned chance gates the
// drop, the enemy's weighted table picks a power-up, and enemies without a
// table drop a coin instead.
func (s *CollisionSystem) rollLoot(w *ecs.World, enemy *component.Enemy, x, y float64) {
	if s.rng.Float64() >= s.registry.Tuning.DropChance {
		return
	}
	if len(enemy.Drops) == 0 {
		entity.SpawnCoin(w, s.pools.Coins, s.registry.Tuning.CoinValue, x, y)
		return
	}

	total := 0.0
	for _, d := range enemy.Drops {
		if d.Weight > 0 {
			total += d.Weight
		}
	}
	if total <= 0 {
		return
	}
	roll := s.rng.Float64() * total
	for _, d := range enemy.Drops {
		if d.Weight <= 0 {
			continue
		}
		roll -= d.Weight
		if roll <= 0 {
			entity.SpawnPowerUp(w, s.pools.PowerUps, s.registry, d.PowerUp, x, y)
			return
		}
	}
}

func (s *CollisionSystem) collectPowerUp(w *ecs.World, e ecs.Entity) {
	p, ok := ecs.Get[component.PowerUp](w, e, component.PowerUpComponent.Kind())
	if !ok || !p.Active {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}

	switch p.Effect {
	case component.EffectHeal:
		if health, ok := ecs.Get[component.Health](w, player, component.HealthComponent.Kind()); ok {
			health.Current = common.ClampInt(health.Current+p.Heal, 0, health.Max)
			_ = ecs.Add(w, player, component.HealthComponent.Kind(), health)
		}
	case component.EffectSpeed:
		if buff, ok := ecs.Get[component.Buff](w, player, component.BuffComponent.Kind()); ok {
			buff.SpeedFrames = p.Duration
			buff.SpeedMult = p.SpeedMult
			_ = ecs.Add(w, player, component.BuffComponent.Kind(), buff)
		}
	case component.EffectShield:
		if buff, ok := ecs.Get[component.Buff](w, player, component.BuffComponent.Kind()); ok {
			buff.ShieldFrames = p.Duration
			_ = ecs.Add(w, player, component.BuffComponent.Kind(), buff)
		}
	case component.EffectWeapon:
		if weapon, ok := ecs.Get[component.Weapon](w, player, component.WeaponComponent.Kind()); ok {
			if weapon.Key == p.Weapon {
				if cfg, ok := s.registry.Weapon(weapon.Key); ok {
					weapon.Level = common.ClampInt(weapon.Level+1, 0, len(cfg.Levels)-1)
				}
			} else {
				weapon.Key = p.Weapon
				weapon.Level = 0
			}
			_ = ecs.Add(w, player, component.WeaponComponent.Kind(), weapon)
		}
	}

	entity.ReleasePowerUp(w, s.pools.PowerUps, e)
}

// DamagePlayer applies damage to the player unless a shield or an
// invulnerability window absorbs it. Losing all health costs a life: the
// ledger hears about it on the bus, and the ship respawns at full health
// behind a longer window.
func DamagePlayer(w *ecs.World, amount, invulnFrames int) {
	if w == nil || amount <= 0 {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	if ecs.Has(w, player, component.InvulnerableComponent.Kind()) {
		return
	}
	if buff, ok := ecs.Get[component.Buff](w, player, component.BuffComponent.Kind()); ok && buff.ShieldFrames > 0 {
		return
	}
	health, ok := ecs.Get[component.Health](w, player, component.HealthComponent.Kind())
	if !ok {
		return
	}

	health.Current -= amount
	if health.Current > 0 {
		_ = ecs.Add(w, player, component.HealthComponent.Kind(), health)
		if invulnFrames > 0 {
			_ = ecs.Add(w, player, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: invulnFrames})
		}
		return
	}

	health.Current = health.Max
	_ = ecs.Add(w, player, component.HealthComponent.Kind(), health)
	_ = ecs.Add(w, player, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: respawnInvulnFrames})
	if bus := w.Bus(); bus != nil {
		if t, ok := ecs.Get[component.Transform](w, player, component.TransformComponent.Kind()); ok {
			bus.Publish(event.Explosion{X: t.X, Y: t.Y, Size: 22})
		}
		bus.Publish(event.LifeLost{})
	}
}
