package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from    Phase
		ev      Event
		to      Phase
		wantErr error
	}{
		{PhaseIdle, EventInitialFetch, PhaseInitialLoading, nil},
		{PhaseInitialLoading, EventFetchDone, PhaseReady, nil},
		{PhaseInitialLoading, EventFetchFailed, PhaseIdle, nil},
		{PhaseReady, EventFetchMore, PhaseLoadingMore, nil},
		{PhaseLoadingMore, EventFetchDone, PhaseReady, nil},
		{PhaseLoadingMore, EventFetchFailed, PhaseReady, nil},
		{PhaseReady, EventMutated, PhaseReady, nil},
		{PhaseIdle, EventMutated, PhaseIdle, nil},
		{PhaseLoadingMore, EventFetchMore, PhaseLoadingMore, ErrFetchInFlight},
		{PhaseInitialLoading, EventInitialFetch, PhaseInitialLoading, ErrFetchInFlight},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.ev), func(t *testing.T) {
			got, err := Transition(tt.from, tt.ev)
			assert.Equal(t, tt.to, got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransitionInvalid(t *testing.T) {
	_, err := Transition(PhaseIdle, EventFetchMore)
	assert.Error(t, err)

	_, err = Transition(PhaseReady, EventFetchDone)
	assert.Error(t, err)
}

func TestSplitFullName(t *testing.T) {
	first, last, err := SplitFullName("  Ali Can  Veli ")
	require.NoError(t, err)
	assert.Equal(t, "Ali Can", first)
	assert.Equal(t, "Veli", last)

	for _, bad := range []string{"", "A", "Ali", "   "} {
		_, _, err := SplitFullName(bad)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, bad)
	}
}

func TestValidate(t *testing.T) {
	ok := User{FirstName: "Ali", LastName: "Veli", Email: "ali@example.com", Age: 30}
	assert.NoError(t, Validate(ok))

	err := Validate(User{FirstName: "Ali", Email: "ali", Age: 0})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"LastName", "Email", "Age"}, verr.Fields)
}

func TestMatches(t *testing.T) {
	u := User{FirstName: "Ali", LastName: "Veli", Email: "AV@example.com"}
	assert.True(t, u.Matches("ALI"))
	assert.True(t, u.Matches("li ve"))
	assert.True(t, u.Matches("av@"))
	assert.False(t, u.Matches("zeynep"))
}

func TestMutationErrorUnwrap(t *testing.T) {
	cause := &TransportError{Op: "POST /users/add", StatusCode: 503, Err: errors.New("unavailable")}
	err := &MutationError{Op: "create", Err: cause}

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 503, terr.StatusCode)
	assert.Contains(t, err.Error(), "failed to create user")

	notFound := &MutationError{Op: "update", ID: 4, Err: ErrUserNotFound}
	assert.ErrorIs(t, notFound, ErrUserNotFound)
	assert.Equal(t, "failed to update user 4: user not found", notFound.Error())
}
