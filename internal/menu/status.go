package menu

import "fmt"

// StatusKind selects the colour and marker of a status message.
type StatusKind int

const (
	StatusSuccess StatusKind = iota
	StatusError
	StatusWarning
	StatusInfo
)

// String returns the lowercase name of the kind.
func (k StatusKind) String() string {
	switch k {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusWarning:
		return "warning"
	case StatusInfo:
		return "info"
	default:
		return fmt.Sprintf("StatusKind(%d)", int(k))
	}
}

// StatusMessage is the transient feedback line under the menu.
type StatusMessage struct {
	Kind StatusKind
	Text string
}

func success(format string, args ...any) StatusMessage {
	return StatusMessage{Kind: StatusSuccess, Text: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...any) StatusMessage {
	return StatusMessage{Kind: StatusError, Text: fmt.Sprintf(format, args...)}
}

func warning(text string) StatusMessage {
	return StatusMessage{Kind: StatusWarning, Text: text}
}

func info(format string, args ...any) StatusMessage {
	return StatusMessage{Kind: StatusInfo, Text: fmt.Sprintf(format, args...)}
}
