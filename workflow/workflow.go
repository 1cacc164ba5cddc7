package workflow

import (
	"errors"
	"fmt"
)

// Status is the editorial state of a post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Role is the actor role evaluated by the transition table.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEditor   Role = "editor"
	RoleReporter Role = "reporter"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleReporter:
		return true
	}
	return false
}

var (
	ErrInvalidStatus    = errors.New("invalid status")
	ErrFeedbackRequired = errors.New("feedback is required for rejection")
	ErrNotOwner         = errors.New("not the author of this post")
	ErrNotAllowed       = errors.New("transition not allowed for this role")
)

// Change is the field set a permitted transition commits. Status and
// Feedback always move together so that rejected posts carry feedback and
// nothing else does.
type Change struct {
	Status   Status
	Feedback string
}

// Actor is the identity a transition is evaluated against. IsOwner is
// data-dependent (author equality) and layered on top of the static role
// table by the decision functions.
type Actor struct {
	Role    Role
	IsOwner bool
}

// rule is one row of the transition table. A nil from set means any source
// status is accepted.
type rule struct {
	roles         map[Role]bool
	from          map[Status]bool
	ownerOnly     bool
	needsFeedback bool
}

func (r rule) allows(actor Actor, from Status) error {
	if !r.roles[actor.Role] {
		return ErrNotAllowed
	}
	if r.ownerOnly && !actor.IsOwner {
		return ErrNotOwner
	}
	if r.from != nil && !r.from[from] {
		return fmt.Errorf("%w: cannot move from %q", ErrNotAllowed, from)
	}
	return nil
}

// transitions maps the target status to the rule that permits reaching it
// through the stepwise (non-override) path.
var transitions = map[Status]rule{
	StatusSubmitted: {
		roles:     map[Role]bool{RoleReporter: true},
		from:      map[Status]bool{StatusDraft: true},
		ownerOnly: true,
	},
	StatusApproved: {
		roles: map[Role]bool{RoleEditor: true, RoleAdmin: true},
		from:  map[Status]bool{StatusSubmitted: true, StatusRejected: true},
	},
	StatusRejected: {
		roles:         map[Role]bool{RoleEditor: true, RoleAdmin: true},
		from:          map[Status]bool{StatusSubmitted: true, StatusDraft: true},
		needsFeedback: true,
	},
}

// InitialStatus returns the status a freshly created post starts in.
// Editor-authored posts skip review and go live immediately.
func InitialStatus(role Role) Status {
	if role == RoleEditor || role == RoleAdmin {
		return StatusApproved
	}
	return StatusDraft
}

// Submit moves an owned draft into review.
func Submit(actor Actor, from Status) (Change, error) {
	return Transition(actor, from, StatusSubmitted, "")
}

// Review applies an editorial approve/reject decision.
func Review(actor Actor, from, to Status, feedback string) (Change, error) {
	if to != StatusApproved && to != StatusRejected {
		return Change{}, fmt.Errorf("%w: %q is not a review decision", ErrInvalidStatus, to)
	}
	return Transition(actor, from, to, feedback)
}

// Transition validates one stepwise status move and returns the change to
// commit. Nothing is mutated on error.
func Transition(actor Actor, from, to Status, feedback string) (Change, error) {
	if !to.Valid() {
		return Change{}, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	r, ok := transitions[to]
	if !ok {
		return Change{}, fmt.Errorf("%w: cannot move to %q", ErrNotAllowed, to)
	}
	if err := r.allows(actor, from); err != nil {
		return Change{}, err
	}
	return applyFeedbackRule(to, feedback, r.needsFeedback)
}

// Override is the admin fast path: any target status, no source-state or
// ownership constraints. The feedback invariant still holds.
func Override(actor Actor, to Status, feedback string) (Change, error) {
	if actor.Role != RoleAdmin {
		return Change{}, ErrNotAllowed
	}
	if !to.Valid() {
		return Change{}, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	return applyFeedbackRule(to, feedback, to == StatusRejected)
}

// applyFeedbackRule enforces: status == rejected iff feedback is non-empty.
// Any move away from rejected clears stale feedback.
func applyFeedbackRule(to Status, feedback string, needsFeedback bool) (Change, error) {
	if needsFeedback && feedback == "" {
		return Change{}, ErrFeedbackRequired
	}
	if to != StatusRejected {
		feedback = ""
	}
	return Change{Status: to, Feedback: feedback}, nil
}

// CanEditContent reports whether an actor may change a post's content
// fields. Reporters edit only their own not-yet-approved posts; the status
// (including rejected) is untouched by a content edit. Editors and admins
// may edit anything.
func CanEditContent(actor Actor, status Status) error {
	switch actor.Role {
	case RoleEditor, RoleAdmin:
		return nil
	case RoleReporter:
		if !actor.IsOwner {
			return ErrNotOwner
		}
		if status == StatusApproved {
			return fmt.Errorf("%w: approved posts are locked for their author", ErrNotAllowed)
		}
		return nil
	}
	return ErrNotAllowed
}

// CanDelete reports whether an actor may remove a post. Owners delete their
// own posts while not yet approved; admins delete anything.
func CanDelete(actor Actor, status Status) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleReporter:
		if !actor.IsOwner {
			return ErrNotOwner
		}
		if status == StatusApproved {
			return fmt.Errorf("%w: approved posts can only be removed by an admin", ErrNotAllowed)
		}
		return nil
	}
	return ErrNotAllowed
}
