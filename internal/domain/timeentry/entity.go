package timeentry

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// TimeEntry is one employee's attendance record for one calendar date.
// JSON field names match the persisted layout shared with the browser client.
type TimeEntry struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employeeId"`
	Date       string  `json:"date"`
	ClockIn    *string `json:"clockIn"`
	ClockOut   *string `json:"clockOut"`
	TotalHours float64 `json:"totalHours"`
}

type State string

const (
	StateEmpty  State = "empty"
	StateOpen   State = "open"
	StateClosed State = "closed"
)

func (e TimeEntry) State() State {
	switch {
	case e.ClockIn != nil && e.ClockOut != nil:
		return StateClosed
	case e.ClockIn != nil:
		return StateOpen
	default:
		return StateEmpty
	}
}

func (e TimeEntry) IsOpen() bool {
	return e.State() == StateOpen
}

func (e TimeEntry) IsClosed() bool {
	return e.State() == StateClosed
}

// Key is the natural key of an entry: one entry per employee per date.
type Key struct {
	EmployeeID string
	Date       string
}

func (e TimeEntry) Key() Key {
	return Key{EmployeeID: e.EmployeeID, Date: e.Date}
}

// IndexByKey maps each key to the position of its last entry. Imported data
// may hold several entries for one key; the last one stored is the entry of
// record everywhere.
func IndexByKey(entries []TimeEntry) map[Key]int {
	index := make(map[Key]int, len(entries))
	for i, e := range entries {
		index[e.Key()] = i
	}
	return index
}

// Clone returns a copy that shares no pointers with e.
func (e TimeEntry) Clone() TimeEntry {
	out := e
	if e.ClockIn != nil {
		v := *e.ClockIn
		out.ClockIn = &v
	}
	if e.ClockOut != nil {
		v := *e.ClockOut
		out.ClockOut = &v
	}
	return out
}
