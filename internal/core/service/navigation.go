package service

// Flow is the navigation tree the UI shell renders.
type Flow string

const (
	FlowLoading Flow = "loading"
	FlowGuest   Flow = "guest"
	FlowApp     Flow = "app"
)

// Route picks the navigation tree for a session snapshot: a full-screen
// loading indicator while the startup probe runs, the guest flow without a
// session, and the app otherwise.
func Route(snap SessionSnapshot) Flow {
	switch snap.State {
	case StateLoading:
		return FlowLoading
	case StateAuthenticated:
		if snap.Session != nil {
			return FlowApp
		}
	}
	return FlowGuest
}
