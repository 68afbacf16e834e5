package view

import (
	"errors"

	"github.com/pandey-solutions/saves/internal/domain/connection"
)

// Name identifies a top-level screen
type Name string

const (
	Landing Name = "landing"
	Wizard  Name = "wizard"
	Demo    Name = "demo"
)

// Method is the chosen role provisioning method. It only changes the
// instructions that are shown.
type Method string

const (
	MethodCloudFormation Method = "cloudformation"
	MethodCLI            Method = "cli"
)

// Valid reports whether m is a known provisioning method
func (m Method) Valid() bool {
	return m == MethodCloudFormation || m == MethodCLI
}

// Step is the wizard sub-step derived from state
type Step string

const (
	StepAwaitingSession Step = "awaiting-session"
	StepChooseMethod    Step = "choose-method"
	StepSubmitRole      Step = "submit-role"
)

// State is the complete UI state for one session
type State struct {
	View       Name                `json:"view"`
	Method     Method              `json:"method"`
	ExternalID string              `json:"externalId,omitempty"`
	RoleArn    string              `json:"roleArn,omitempty"`
	Loading    bool                `json:"loading"`
	Connected  bool                `json:"connected"`
	Feedback   *connection.Failure `json:"feedback,omitempty"`
}

// Initial returns the state of a fresh visit
func Initial() State {
	return State{View: Landing, Method: MethodCloudFormation}
}

// Step derives the wizard sub-step. Outside the wizard it is empty.
func (s State) Step() Step {
	switch {
	case s.View != Wizard:
		return ""
	case s.ExternalID == "":
		return StepAwaitingSession
	case s.RoleArn == "" && !s.Loading:
		return StepChooseMethod
	default:
		return StepSubmitRole
	}
}

// Kind identifies an action
type Kind string

const (
	ActionStart            Kind = "start"
	ActionDemo             Kind = "demo"
	ActionHome             Kind = "home"
	ActionBack             Kind = "back"
	ActionSelectMethod     Kind = "select-method"
	ActionSessionResolved  Kind = "session-resolved"
	ActionSubmit           Kind = "submit"
	ActionConnectSucceeded Kind = "connect-succeeded"
	ActionConnectFailed    Kind = "connect-failed"
	ActionDismiss          Kind = "dismiss"
)

// Action is an input to Reduce
type Action struct {
	Kind       Kind
	Method     Method
	ExternalID string
	RoleArn    string
	Failure    *connection.Failure
}

var (
	ErrInvalidTransition = errors.New("view: action not allowed in current view")
	ErrConnectInFlight   = errors.New("view: a connection attempt is already in progress")
	ErrEmptyRoleArn      = errors.New("view: role ARN is required")
	ErrUnknownAction     = errors.New("view: unknown action")
	ErrUnknownMethod     = errors.New("view: unknown provisioning method")
)
