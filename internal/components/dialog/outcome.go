package dialog

import "fmt"

// OutcomeKind tags a LoginOutcome.
type OutcomeKind uint8

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeMessage
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeMessage:
		return "message"
	case OutcomeError:
		return "error"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", uint8(k))
	}
}

// Outcome is the classified result of one login attempt.
type Outcome struct {
	Kind OutcomeKind
	Text string
}

// Classify maps a login response onto exactly one outcome.
// A message wins over an error; a response with neither is a success.
func Classify(resp Response) Outcome {
	if resp.Message != "" {
		return Outcome{Kind: OutcomeMessage, Text: resp.Message}
	}
	if resp.Error != "" {
		return Outcome{Kind: OutcomeError, Text: resp.Error}
	}
	return Outcome{Kind: OutcomeSuccess}
}

// Notification returns the notification content for the outcome.
// username is only used by the success variant.
func (o Outcome) Notification(username string) (title, description string) {
	switch o.Kind {
	case OutcomeMessage:
		return TitleMessage, o.Text
	case OutcomeError:
		return TitleError, o.Text
	default:
		return TitleSuccess, fmt.Sprintf("Welcome back %s!", username)
	}
}
