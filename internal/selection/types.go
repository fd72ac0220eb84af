package selection

import "sketchedit/internal/domain"

// Item is one selectable thing: an entity or a constraint, never both
type Item struct {
	Entity     domain.HEntity
	Constraint domain.HConstraint
	Emphasized bool
}

// EntityItem returns an item referring to an entity
func EntityItem(h domain.HEntity) Item { return Item{Entity: h} }

// ConstraintItem returns an item referring to a constraint
func ConstraintItem(h domain.HConstraint) Item { return Item{Constraint: h} }

// IsEmpty reports whether the item refers to nothing
func (i Item) IsEmpty() bool { return i.Entity.IsNull() && i.Constraint.IsNull() }

// IsValid reports whether the item refers to exactly one handle
func (i Item) IsValid() bool { return i.Entity.IsNull() != i.Constraint.IsNull() }

// Equals compares the referenced handles, ignoring emphasis
func (i Item) Equals(o Item) bool {
	return i.Entity == o.Entity && i.Constraint == o.Constraint
}

// IsStale reports whether the item refers to a deleted handle
func (i Item) IsStale(deleted domain.HandleSet) bool {
	if !i.Entity.IsNull() {
		return deleted.HasEntity(i.Entity) || deleted.HasRequest(i.Entity.Request())
	}
	return deleted.HasConstraint(i.Constraint)
}

// Classification is a semantic summary of the selection
type Classification struct {
	Points           int
	Entities         int // excludes points and normals
	Workplanes       int
	Faces            int
	LineSegments     int
	CircleOrArcs     int
	Arcs             int
	Cubics           int
	PeriodicCubics   int
	AnyNormals       int
	Vectors          int // line segments and normals
	Constraints      int
	Stylables        int
	ConstraintLabels int
	WithEndpoints    int
	N                int

	PointHandles      []domain.HEntity
	EntityHandles     []domain.HEntity
	AnyNormalHandles  []domain.HEntity
	VectorHandles     []domain.HEntity
	FaceHandles       []domain.HEntity
	ConstraintHandles []domain.HConstraint
}
