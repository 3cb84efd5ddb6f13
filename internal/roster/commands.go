package roster

// Commands are the typed events the UI emits. The session consumes them;
// the core never touches a rendering surface.

type Command interface {
	isCommand()
}

// RequestAssign places a resident into a (date, hospital) slot.
type RequestAssign struct {
	Month          string
	Date           string
	Resident       string
	Hospital       string
	MaxAssignments int
}

// RequestUnassign removes a resident from every hospital on a date.
type RequestUnassign struct {
	Month    string
	Date     string
	Resident string
}

// RequestMove relocates a resident between slots.
type RequestMove struct {
	Month          string
	Resident       string
	FromDate       string
	FromHospital   string
	ToDate         string
	ToHospital     string
	MaxAssignments int
}

// RequestUndo reverses the most recent confirmed edit.
type RequestUndo struct{}

// SelectResident replaces the highlighted resident.
type SelectResident struct {
	Resident string
}

// ClearSelection drops the highlight.
type ClearSelection struct{}

// BeginDrag opens a drag gesture for a resident currently in a slot.
type BeginDrag struct {
	Resident     string
	FromDate     string
	FromHospital string
}

// CancelDrag abandons the active gesture without a drop.
type CancelDrag struct{}

// DropOnCell drops the dragged resident onto a single (date, hospital)
// cell, as in the tabular grid view. No disambiguation is needed.
type DropOnCell struct {
	Month          string
	Date           string
	Hospital       string
	MaxAssignments int
}

// DropOnDate drops the dragged resident onto a date cell spanning all
// hospitals, as in the calendar month-grid view. When several hospitals
// are eligible the session answers with the candidate set and keeps the
// gesture open until an explicit DropOnCell choice arrives.
type DropOnDate struct {
	Month          string
	Date           string
	MaxAssignments int
}

func (RequestAssign) isCommand()   {}
func (RequestUnassign) isCommand() {}
func (RequestMove) isCommand()     {}
func (RequestUndo) isCommand()     {}
func (SelectResident) isCommand()  {}
func (ClearSelection) isCommand()  {}
func (BeginDrag) isCommand()       {}
func (CancelDrag) isCommand()      {}
func (DropOnCell) isCommand()      {}
func (DropOnDate) isCommand()      {}
