package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/ddu-connect/backend/internal/domain/error"
)

func TestGetProfile(t *testing.T) {
	repo := newFakeStudentRepo()
	seedStudent(repo, "CS2021001", "Abebe", "abebe@ddu.edu.et")
	uc := NewGetProfileUseCase(repo)

	profile, err := uc.Execute(context.Background(), "CS2021001")
	require.NoError(t, err)
	assert.Equal(t, "Abebe", profile.Name)
	assert.Equal(t, "abebe@ddu.edu.et", profile.Email)

	_, err = uc.Execute(context.Background(), "CS2021999")
	require.Error(t, err)
	assert.Equal(t, domainerror.ErrCodeAccountNotFound, domainerror.AuthErrorCodeOf(err))
}
