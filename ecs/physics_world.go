package ecs

import (
	"github.com/jakecoffman/cp"
)

// BodyKind is the discriminant carried by every physics body. Collision
// response dispatches on kind pairs, never on runtime type probing.
type BodyKind uint8

const (
	BodyNone BodyKind = iota
	BodyPlayer
	BodyPlayerBullet
	BodyEnemyBullet
	BodyEnemy
	BodyMine
	BodyBoss
	BodyPowerUp
	BodyCoin
)

func (k BodyKind) String() string {
	switch k {
	case BodyPlayer:
		return "player"
	case BodyPlayerBullet:
		return "player_bullet"
	case BodyEnemyBullet:
		return "enemy_bullet"
	case BodyEnemy:
		return "enemy"
	case BodyMine:
		return "mine"
	case BodyBoss:
		return "boss"
	case BodyPowerUp:
		return "powerup"
	case BodyCoin:
		return "coin"
	}
	return "none"
}

// Contact is one overlapping pair reported for the current tick.
type Contact struct {
	A     Entity
	B     Entity
	KindA BodyKind
	KindB BodyKind
}

type physicsRecord struct {
	body    *cp.Body
	shape   *cp.Shape
	kind    BodyKind
	inSpace bool
}

// PhysicsWorld wraps the Chipmunk space used purely as an overlap oracle:
// all shapes are sensors on kinematic bodies positioned from transforms,
// and CollectContacts reports the tick's overlapping pairs for the
// collision resolver.
type PhysicsWorld struct {
	space   *cp.Space
	records map[Entity]*physicsRecord
	byShape map[*cp.Shape]Entity
	order   []Entity
}

// NewPhysicsWorld creates a zero-gravity sensor-only space.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &PhysicsWorld{
		space:   space,
		records: make(map[Entity]*physicsRecord),
		byShape: make(map[*cp.Shape]Entity),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddBox registers a box-shaped sensor body for an entity.
func (pw *PhysicsWorld) AddBox(e Entity, kind BodyKind, x, y, w, h float64) {
	if pw == nil || pw.space == nil || !e.Valid() || w <= 0 || h <= 0 {
		return
	}
	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := cp.NewBox(body, w, h, 0)
	pw.register(e, kind, body, shape)
}

// AddCircle registers a circle-shaped sensor body for an entity.
func (pw *PhysicsWorld) AddCircle(e Entity, kind BodyKind, x, y, radius float64) {
	if pw == nil || pw.space == nil || !e.Valid() || radius <= 0 {
		return
	}
	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	pw.register(e, kind, body, shape)
}

func (pw *PhysicsWorld) register(e Entity, kind BodyKind, body *cp.Body, shape *cp.Shape) {
	shape.SetSensor(true)
	shape.SetCollisionType(cp.CollisionType(kind))
	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	if old, ok := pw.records[e]; ok {
		pw.detach(old)
		delete(pw.byShape, old.shape)
	} else {
		pw.order = append(pw.order, e)
	}
	pw.records[e] = &physicsRecord{body: body, shape: shape, kind: kind, inSpace: true}
	pw.byShape[shape] = e
}

// SetPosition moves an entity's body. The broad-phase picks the move up
// on the next CollectContacts.
func (pw *PhysicsWorld) SetPosition(e Entity, x, y float64) {
	if pw == nil {
		return
	}
	rec, ok := pw.records[e]
	if !ok {
		return
	}
	rec.body.SetPosition(cp.Vector{X: x, Y: y})
}

// Position returns an entity's body position.
func (pw *PhysicsWorld) Position(e Entity) (float64, float64, bool) {
	if pw == nil {
		return 0, 0, false
	}
	rec, ok := pw.records[e]
	if !ok {
		return 0, 0, false
	}
	p := rec.body.Position()
	return p.X, p.Y, true
}

// Kind returns the body kind registered for an entity.
func (pw *PhysicsWorld) Kind(e Entity) BodyKind {
	if pw == nil {
		return BodyNone
	}
	rec, ok := pw.records[e]
	if !ok || !rec.inSpace {
		return BodyNone
	}
	return rec.kind
}

// Deactivate pulls an entity's shape out of the space, used when a pooled
// slot is released. The record is kept so Activate can restore it.
func (pw *PhysicsWorld) Deactivate(e Entity) {
	if pw == nil {
		return
	}
	rec, ok := pw.records[e]
	if !ok || !rec.inSpace {
		return
	}
	pw.detach(rec)
}

// Activate restores a previously deactivated entity at a new position.
func (pw *PhysicsWorld) Activate(e Entity, x, y float64) {
	if pw == nil {
		return
	}
	rec, ok := pw.records[e]
	if !ok || rec.inSpace {
		return
	}
	rec.body.SetPosition(cp.Vector{X: x, Y: y})
	pw.space.AddBody(rec.body)
	pw.space.AddShape(rec.shape)
	rec.inSpace = true
}

// Remove drops an entity's body entirely.
func (pw *PhysicsWorld) Remove(e Entity) {
	if pw == nil {
		return
	}
	rec, ok := pw.records[e]
	if !ok {
		return
	}
	pw.detach(rec)
	delete(pw.byShape, rec.shape)
	delete(pw.records, e)
	for i, ent := range pw.order {
		if ent == e {
			pw.order = append(pw.order[:i], pw.order[i+1:]...)
			break
		}
	}
}

func (pw *PhysicsWorld) detach(rec *physicsRecord) {
	if rec == nil || !rec.inSpace {
		return
	}
	pw.space.RemoveShape(rec.shape)
	pw.space.RemoveBody(rec.body)
	rec.inSpace = false
}

// contactSources lists, per initiating kind, which target kinds produce a
// reported pair. Every pair the resolver handles is reachable from the
// player body or a player bullet, so those are the only query sources.
var contactSources = map[BodyKind][]BodyKind{
	BodyPlayer:       {BodyEnemy, BodyMine, BodyBoss, BodyEnemyBullet, BodyPowerUp, BodyCoin},
	BodyPlayerBullet: {BodyEnemy, BodyMine, BodyBoss},
}

// contactStepDt is the nudge step that makes the space re-cache every
// shape's bounds before the query pass. All bodies are kinematic with zero
// velocity, so stepping never moves anything.
const contactStepDt = 1.0 / 240

// CollectContacts queries the space for this tick's overlapping pairs.
// Pairs are reported once, source first, in body insertion order.
func (pw *PhysicsWorld) CollectContacts() []Contact {
	if pw == nil || pw.space == nil {
		return nil
	}
	pw.space.Step(contactStepDt)
	var out []Contact
	for _, src := range pw.order {
		rec, ok := pw.records[src]
		if !ok || !rec.inSpace {
			continue
		}
		targets, ok := contactSources[rec.kind]
		if !ok {
			continue
		}
		pw.space.ShapeQuery(rec.shape, func(other *cp.Shape, _ *cp.ContactPointSet) {
			ent, ok := pw.byShape[other]
			if !ok || ent == src {
				return
			}
			otherRec := pw.records[ent]
			if otherRec == nil || !otherRec.inSpace {
				return
			}
			for _, want := range targets {
				if otherRec.kind == want {
					out = append(out, Contact{A: src, B: ent, KindA: rec.kind, KindB: otherRec.kind})
					return
				}
			}
		})
	}
	return out
}
