package domain

import "time"

// EntryOrder selects the sort order of an entry query.
type EntryOrder string

const (
	OrderByStartDesc   EntryOrder = "start_desc"
	OrderByStartAsc    EntryOrder = "start_asc"
	OrderByCreatedDesc EntryOrder = "created_desc"
)

// EntryFilter narrows a time entry query. StartFrom is inclusive and
// StartBefore exclusive; nil fields do not constrain.
type EntryFilter struct {
	UserID      int64
	ProjectID   *int64
	TaskID      *int64
	Status      *Status
	StartFrom   *time.Time
	StartBefore *time.Time
	OrderBy     EntryOrder
	Limit       int
}
