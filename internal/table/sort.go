package table

const (
	sortColumnDate = "date"
	sortColumnTime = "time"

	// SortAscending is the backend's ascending sort direction value.
	SortAscending = 1
	// SortDescending is the backend's descending sort direction value.
	SortDescending = -1
)

// SortState is the table's current sort column and direction.
type SortState struct {
	Column     string `json:"column"`
	Descending bool   `json:"descending"`
}

// DefaultLogSort is the initial submitted-log ordering: newest dates first.
func DefaultLogSort() SortState {
	return SortState{Column: sortColumnDate, Descending: true}
}

// Toggle applies a header click: clicking the active column flips the
// direction, clicking a new column selects it ascending.
func (state SortState) Toggle(column string) SortState {
	if state.Column == column {
		return SortState{Column: column, Descending: !state.Descending}
	}
	return SortState{Column: column, Descending: false}
}

// BackendSort builds the field → ±1 mapping sent to the backend. A fixed
// secondary tiebreak on time keeps ordering deterministic for equal primary
// values; when time itself is the primary column, date becomes the secondary
// key instead.
func (state SortState) BackendSort() map[string]int {
	primaryColumn := state.Column
	if primaryColumn == "" {
		primaryColumn = sortColumnDate
	}

	direction := SortAscending
	if state.Descending {
		direction = SortDescending
	}

	backendSort := map[string]int{primaryColumn: direction}
	if primaryColumn == sortColumnTime {
		backendSort[sortColumnDate] = SortDescending
	} else {
		backendSort[sortColumnTime] = SortDescending
	}
	return backendSort
}
