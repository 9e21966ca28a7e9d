package output

// View names a screen of the client.
type View string

const (
	ViewHome      View = "home"
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
	ViewEditor    View = "editor"
)

// Navigator performs view changes on behalf of guards and flows.
type Navigator interface {
	Navigate(to View)
}
