package testutils

// Components are attached as pointers in tests so systems can mutate them in place.

type Health struct{ Value int }

func (Health) Name() string { return "Health" }

type Position struct{ X, Y float64 }

func (Position) Name() string { return "Position" }

type Velocity struct{ X, Y float64 }

func (Velocity) Name() string { return "Velocity" }

type Experience struct{ Value int }

func (Experience) Name() string { return "Experience" }

type PlayerTag struct{ Tag string }

func (PlayerTag) Name() string { return "PlayerTag" }

type Frozen struct{}

func (Frozen) Name() string { return "Frozen" }

type Lifetime struct{ Remaining float64 }

func (Lifetime) Name() string { return "Lifetime" }
