package dialog

type (
	// FormValues is the raw input of the login form at submit time.
	FormValues struct {
		Username string
		Password string
	}

	// Credentials is built from FormValues once validation passes. It is never persisted.
	Credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	// Response is what the login operation resolves to. At most one of
	// Message and Error is expected to be set; neither means success.
	Response struct {
		Message string `json:"message,omitempty"`
		Error   string `json:"error,omitempty"`
	}

	// Notification is the state handed to the notification component.
	Notification struct {
		Title       string
		Description string
		Visible     bool
		// Pulse increases on every new outcome so identical content still re-displays.
		Pulse uint64
	}

	// ReseedFunc receives a new token on successful login.
	ReseedFunc func(token float64)
)

const (
	TitleMessage = "Login Message"
	TitleError   = "Error logging in"
	TitleSuccess = "Logging in successful"
)
