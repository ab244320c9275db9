package domain

// Coordinator is read-only reference data from the studio directory.
type Coordinator struct {
	ID   string
	Name string
	Role CoordinatorRole
}
