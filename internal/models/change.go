package models

// ChangeOp identifies the kind of confirmed edit a Change records.
type ChangeOp string

const (
	ChangeAssign   ChangeOp = "assign"
	ChangeUnassign ChangeOp = "unassign"
	ChangeMove     ChangeOp = "move"
)

// Change is one backend-confirmed edit, recorded so it can be reversed.
// Only fields relevant to Op are set. Unassign captures every hospital the
// resident held on the date, in schedule order, because undoing it must
// re-assign each one.
type Change struct {
	Op       ChangeOp `json:"op"`
	Month    string   `json:"month"`
	Resident string   `json:"resident"`

	// assign / unassign
	Date      string   `json:"date,omitempty"`
	Hospital  string   `json:"hospital,omitempty"`
	Hospitals []string `json:"hospitals,omitempty"`

	// move
	FromDate     string `json:"from_date,omitempty"`
	FromHospital string `json:"from_hospital,omitempty"`
	ToDate       string `json:"to_date,omitempty"`
	ToHospital   string `json:"to_hospital,omitempty"`
}
