package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusDraft, InitialStatus(RoleReporter))
	assert.Equal(t, StatusApproved, InitialStatus(RoleEditor))
	assert.Equal(t, StatusApproved, InitialStatus(RoleAdmin))
}

func TestSubmit(t *testing.T) {
	owner := Actor{Role: RoleReporter, IsOwner: true}

	change, err := Submit(owner, StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, change.Status)
	assert.Empty(t, change.Feedback)

	_, err = Submit(Actor{Role: RoleReporter, IsOwner: false}, StatusDraft)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = Submit(owner, StatusApproved)
	assert.ErrorIs(t, err, ErrNotAllowed)

	_, err = Submit(Actor{Role: RoleEditor}, StatusDraft)
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestReviewApprove(t *testing.T) {
	editor := Actor{Role: RoleEditor}

	change, err := Review(editor, StatusSubmitted, StatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, change.Status)

	// approving a rejected post is allowed and clears stale feedback
	change, err = Review(editor, StatusRejected, StatusApproved, "leftover note")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, change.Status)
	assert.Empty(t, change.Feedback)

	_, err = Review(editor, StatusDraft, StatusApproved, "")
	assert.ErrorIs(t, err, ErrNotAllowed)

	_, err = Review(Actor{Role: RoleReporter, IsOwner: true}, StatusSubmitted, StatusApproved, "")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestReviewReject(t *testing.T) {
	editor := Actor{Role: RoleEditor}

	change, err := Review(editor, StatusSubmitted, StatusRejected, "needs sources")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, change.Status)
	assert.Equal(t, "needs sources", change.Feedback)

	// rejection without feedback fails and produces no change
	_, err = Review(editor, StatusSubmitted, StatusRejected, "")
	assert.ErrorIs(t, err, ErrFeedbackRequired)

	// drafts can be rejected too
	_, err = Review(editor, StatusDraft, StatusRejected, "off topic")
	assert.NoError(t, err)

	_, err = Review(editor, StatusApproved, StatusRejected, "pull it")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestReviewRejectsNonDecisionTargets(t *testing.T) {
	editor := Actor{Role: RoleEditor}

	_, err := Review(editor, StatusSubmitted, StatusDraft, "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = Review(editor, StatusSubmitted, Status("published"), "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTransitionUnknownStatus(t *testing.T) {
	_, err := Transition(Actor{Role: RoleAdmin}, StatusDraft, Status("archived"), "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOverride(t *testing.T) {
	admin := Actor{Role: RoleAdmin}

	// admin can jump a fresh draft straight to approved
	change, err := Override(admin, StatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, change.Status)

	change, err = Override(admin, StatusDraft, "stale feedback")
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, change.Status)
	assert.Empty(t, change.Feedback, "feedback only survives on rejected")

	_, err = Override(admin, StatusRejected, "")
	assert.ErrorIs(t, err, ErrFeedbackRequired)

	change, err = Override(admin, StatusRejected, "legal review")
	require.NoError(t, err)
	assert.Equal(t, "legal review", change.Feedback)

	_, err = Override(admin, Status("unknown"), "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = Override(Actor{Role: RoleEditor}, StatusApproved, "")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestCanEditContent(t *testing.T) {
	owner := Actor{Role: RoleReporter, IsOwner: true}

	assert.NoError(t, CanEditContent(owner, StatusDraft))
	assert.NoError(t, CanEditContent(owner, StatusSubmitted))
	assert.NoError(t, CanEditContent(owner, StatusRejected), "rejected content stays editable for revision")
	assert.ErrorIs(t, CanEditContent(owner, StatusApproved), ErrNotAllowed)

	other := Actor{Role: RoleReporter, IsOwner: false}
	assert.ErrorIs(t, CanEditContent(other, StatusDraft), ErrNotOwner)

	assert.NoError(t, CanEditContent(Actor{Role: RoleEditor}, StatusApproved))
	assert.NoError(t, CanEditContent(Actor{Role: RoleAdmin}, StatusApproved))
}

func TestCanDelete(t *testing.T) {
	owner := Actor{Role: RoleReporter, IsOwner: true}

	assert.NoError(t, CanDelete(owner, StatusDraft))
	assert.NoError(t, CanDelete(owner, StatusRejected))
	assert.ErrorIs(t, CanDelete(owner, StatusApproved), ErrNotAllowed)
	assert.ErrorIs(t, CanDelete(Actor{Role: RoleReporter}, StatusDraft), ErrNotOwner)

	assert.NoError(t, CanDelete(Actor{Role: RoleAdmin}, StatusApproved))
	assert.ErrorIs(t, CanDelete(Actor{Role: RoleEditor}, StatusDraft), ErrNotAllowed)
}

// Full editorial round trip: draft -> submitted -> rejected -> approved,
// checking the feedback invariant at every step.
func TestReviewLifecycle(t *testing.T) {
	owner := Actor{Role: RoleReporter, IsOwner: true}
	editor := Actor{Role: RoleEditor}

	status := InitialStatus(RoleReporter)
	require.Equal(t, StatusDraft, status)

	change, err := Submit(owner, status)
	require.NoError(t, err)
	status = change.Status
	require.Equal(t, StatusSubmitted, status)

	change, err = Review(editor, status, StatusRejected, "needs sources")
	require.NoError(t, err)
	status = change.Status
	require.Equal(t, StatusRejected, status)
	require.Equal(t, "needs sources", change.Feedback)

	// the author can still revise rejected content without moving status
	require.NoError(t, CanEditContent(owner, status))

	change, err = Review(editor, status, StatusApproved, change.Feedback)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, change.Status)
	assert.Empty(t, change.Feedback)
}

func TestStatusAndRoleValidation(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusSubmitted, StatusApproved, StatusRejected} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("published").Valid())
	assert.False(t, Status("").Valid())

	for _, r := range []Role{RoleAdmin, RoleEditor, RoleReporter} {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("viewer").Valid())
}
