package domain

// Decision is the outcome of evaluating the route guard for one navigation.
type Decision struct {
	Allow    bool
	Redirect string
	Reason   string
}

// Guard decision reasons, also used as metric labels.
const (
	ReasonAllowed         = "allowed"
	ReasonUnauthenticated = "unauthenticated"
	ReasonUnknownRole     = "unknown_role"
	ReasonRoleMismatch    = "role_mismatch"
)
