package timeentry

type TimeEntryResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	ClockIn    *string `json:"clock_in"`
	ClockOut   *string `json:"clock_out"`
	TotalHours float64 `json:"total_hours"`
	State      State   `json:"state"`
}

func NewTimeEntryResponse(e TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Date:       e.Date,
		ClockIn:    e.ClockIn,
		ClockOut:   e.ClockOut,
		TotalHours: e.TotalHours,
		State:      e.State(),
	}
}

func NewTimeEntryResponses(entries []TimeEntry) []TimeEntryResponse {
	out := make([]TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewTimeEntryResponse(e))
	}
	return out
}

// ClockResponse reports the entry after a clock action. Applied is false when
// the action was a no-op (already open on clock in, nothing open on clock out).
type ClockResponse struct {
	Applied bool               `json:"applied"`
	Message string             `json:"message"`
	Entry   *TimeEntryResponse `json:"entry,omitempty"`
}

// HistoryResponse is an employee's entries, newest date first, with totals.
type HistoryResponse struct {
	TotalDays    int                 `json:"total_days"`
	TotalHours   float64             `json:"total_hours"`
	AverageHours float64             `json:"average_hours"`
	Entries      []TimeEntryResponse `json:"entries"`
}
