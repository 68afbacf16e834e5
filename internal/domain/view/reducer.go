package view

// Reduce applies a to s and returns the next state. It never mutates s. On
// error the returned state equals s.
func Reduce(s State, a Action) (State, error) {
	next := s

	switch a.Kind {
	case ActionStart:
		next.View = Wizard

	case ActionDemo:
		next.View = Demo

	case ActionHome:
		next.View = Landing
		next.Feedback = nil

	case ActionBack:
		if s.View != Wizard {
			return s, ErrInvalidTransition
		}
		next.View = Landing
		next.Feedback = nil

	case ActionSelectMethod:
		if !a.Method.Valid() {
			return s, ErrUnknownMethod
		}
		next.Method = a.Method

	case ActionSessionResolved:
		next.ExternalID = a.ExternalID

	case ActionSubmit:
		if s.View != Wizard {
			return s, ErrInvalidTransition
		}
		if s.Loading {
			return s, ErrConnectInFlight
		}
		if a.RoleArn == "" {
			return s, ErrEmptyRoleArn
		}
		next.RoleArn = a.RoleArn
		next.Loading = true
		next.Feedback = nil

	case ActionConnectSucceeded:
		if !s.Loading {
			return s, ErrInvalidTransition
		}
		next.Loading = false
		next.Connected = true
		next.Feedback = nil
		next.View = Demo

	case ActionConnectFailed:
		if !s.Loading {
			return s, ErrInvalidTransition
		}
		next.Loading = false
		next.Feedback = a.Failure

	case ActionDismiss:
		next.Feedback = nil

	default:
		return s, ErrUnknownAction
	}

	return next, nil
}
