package participant

// Participant is one row of the `participants` table. JSON tags follow the
// column names so API payloads match the table layout.
type Participant struct {
	ID           int64  `json:"participant_id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Registration string `json:"registration"`
}
