package ecs

// Aspect is the component signature a system is interested in. It combines three filters:
//   - all: the entity must have every component in this set.
//   - exclusion: the entity must have none of the components in this set.
//   - one: the entity must have at least one component in this set.
//
// The filters are evaluated in that order and the one filter, when present, decides the result on
// its own. See Interested for the exact rule.
type Aspect struct {
	all       *BitSet
	exclusion *BitSet
	one       *BitSet
}

// NewAspect creates an aspect with all three sets empty. Systems with an empty aspect never receive
// entities.
func NewAspect() *Aspect {
	return &Aspect{
		all:       NewBitSet(),
		exclusion: NewBitSet(),
		one:       NewBitSet(),
	}
}

// AspectForAll creates an aspect that requires every one of the given component types.
func AspectForAll(types ...ComponentType) *Aspect {
	return NewAspect().All(types...)
}

// AspectForOne creates an aspect that requires at least one of the given component types.
func AspectForOne(types ...ComponentType) *Aspect {
	return NewAspect().One(types...)
}

// All adds the component types to the required set.
func (a *Aspect) All(types ...ComponentType) *Aspect {
	for _, t := range types {
		a.all.Set(t.Index())
	}
	return a
}

// Exclude adds the component types to the exclusion set.
func (a *Aspect) Exclude(types ...ComponentType) *Aspect {
	for _, t := range types {
		a.exclusion.Set(t.Index())
	}
	return a
}

// One adds the component types to the at-least-one set.
func (a *Aspect) One(types ...ComponentType) *Aspect {
	for _, t := range types {
		a.one.Set(t.Index())
	}
	return a
}

func (a *Aspect) AllSet() *BitSet {
	return a.all
}

func (a *Aspect) ExclusionSet() *BitSet {
	return a.exclusion
}

func (a *Aspect) OneSet() *BitSet {
	return a.one
}

// IsDummy reports whether the aspect can never select an entity, i.e. both the all and one sets
// are empty. The exclusion set alone does not make an aspect selective.
func (a *Aspect) IsDummy() bool {
	return a.all.IsEmpty() && a.one.IsEmpty()
}

// Interested reports whether an entity with the given component bits matches the aspect.
//
// The all filter runs first and stops at the first missing component. The exclusion filter only
// runs if the entity is still interesting. The one filter, when non-empty, replaces the result of
// the two previous filters, so an entity holding an excluded component still matches as long as
// it has one of the one components.
func (a *Aspect) Interested(bits *BitSet) bool {
	interested := true

	if !a.all.IsEmpty() {
		for i := a.all.NextSetBit(0); i >= 0; i = a.all.NextSetBit(i + 1) {
			if !bits.Get(i) {
				interested = false
				break
			}
		}
	}

	if !a.exclusion.IsEmpty() && interested {
		interested = !a.exclusion.Intersects(bits)
	}

	if !a.one.IsEmpty() {
		interested = a.one.Intersects(bits)
	}

	return interested
}
