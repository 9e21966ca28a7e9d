package entities

// ToastID identifies a toast; ids are never reused within a process.
type ToastID uint64

// ToastKind classifies toast presentation.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastInfo    ToastKind = "info"
	ToastWarning ToastKind = "warning"
	ToastError   ToastKind = "error"
)

// Valid reports whether k is one of the known kinds.
func (k ToastKind) Valid() bool {
	switch k {
	case ToastSuccess, ToastInfo, ToastWarning, ToastError:
		return true
	}
	return false
}

// Toast is a short-lived user notification.
type Toast struct {
	ID      ToastID
	Message string
	Kind    ToastKind
}
