package models

// Mutation request payloads, wire-compatible with the backend's manual
// edit endpoints. MaxAssignments overrides the per-resident cap when set;
// the backend otherwise falls back to per_res_required, then its default.

type AssignRequest struct {
	Month          string `json:"month"`
	Date           string `json:"date"`
	Resident       string `json:"resident"`
	Hospital       string `json:"hospital"`
	MaxAssignments *int   `json:"max_assignments,omitempty"`
}

type UnassignRequest struct {
	Month    string `json:"month"`
	Date     string `json:"date"`
	Resident string `json:"resident"`
}

type MoveRequest struct {
	Month          string `json:"month"`
	Resident       string `json:"resident"`
	FromDate       string `json:"from_date"`
	FromHospital   string `json:"from_hospital,omitempty"`
	ToDate         string `json:"to_date"`
	ToHospital     string `json:"to_hospital"`
	MaxAssignments *int   `json:"max_assignments,omitempty"`
}

// MutationResult is the success envelope every mutation endpoint returns:
// the status marker plus the full recomputed schedule for the month.
type MutationResult struct {
	Status string    `json:"status"`
	Result *Schedule `json:"result"`
}

// APIError is the error body for rejected requests.
type APIError struct {
	Detail string `json:"detail"`
}
