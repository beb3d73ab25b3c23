package domain

// Company identifies a Greenhouse job board.
type Company struct {
	Slug string // boards.greenhouse.io/<slug>
	Name string // display name
}
