package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/ddu-connect/backend/internal/domain/error"
)

func newSignupUseCase(repo *fakeStudentRepo, pw *fakePasswordService) *SignupStudentUseCase {
	return NewSignupStudentUseCase(
		repo,
		pw,
		staticAllowlist{"CS2021001": true, "CS2021002": true},
		newFakeClock(),
	)
}

func TestSignupStudent_Success(t *testing.T) {
	repo := newFakeStudentRepo()
	uc := newSignupUseCase(repo, &fakePasswordService{})

	out, err := uc.Execute(context.Background(), SignupStudentInput{
		StudentID: "CS2021001",
		Name:      "Abebe",
		Email:     "abebe@ddu.edu.et",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Signup successful", out.Message)

	stored := repo.get("CS2021001")
	assert.Equal(t, "hashed:secret123", stored.PasswordHash)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.Equal(t, 0, stored.XP)
	assert.Nil(t, stored.OTP)
	assert.Nil(t, stored.OTPExpiry)
}

func TestSignupStudent_Failures(t *testing.T) {
	valid := SignupStudentInput{
		StudentID: "CS2021001",
		Name:      "Abebe",
		Email:     "abebe@ddu.edu.et",
		Password:  "secret123",
	}

	tests := []struct {
		name     string
		input    func() SignupStudentInput
		seed     func(*fakeStudentRepo)
		wantCode domainerror.AuthErrorCode
	}{
		{
			name:     "missing password",
			input:    func() SignupStudentInput { in := valid; in.Password = ""; return in },
			wantCode: domainerror.ErrCodeMissingFields,
		},
		{
			name:     "student id not allowlisted",
			input:    func() SignupStudentInput { in := valid; in.StudentID = "XX0000000"; return in },
			wantCode: domainerror.ErrCodeInvalidIdentity,
		},
		{
			name:     "allowlist match is case sensitive",
			input:    func() SignupStudentInput { in := valid; in.StudentID = "cs2021001"; return in },
			wantCode: domainerror.ErrCodeInvalidIdentity,
		},
		{
			name:  "student id already registered",
			input: func() SignupStudentInput { return valid },
			seed: func(r *fakeStudentRepo) {
				seedStudent(r, "CS2021001", "Someone", "someone@ddu.edu.et")
			},
			wantCode: domainerror.ErrCodeDuplicateAccount,
		},
		{
			name:  "email already registered",
			input: func() SignupStudentInput { return valid },
			seed: func(r *fakeStudentRepo) {
				seedStudent(r, "CS2021002", "Other", "abebe@ddu.edu.et")
			},
			wantCode: domainerror.ErrCodeDuplicateAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeStudentRepo()
			if tt.seed != nil {
				tt.seed(repo)
			}
			before := len(repo.students)

			_, err := newSignupUseCase(repo, &fakePasswordService{}).Execute(context.Background(), tt.input())
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domainerror.AuthErrorCodeOf(err))
			assert.Len(t, repo.students, before)
		})
	}
}

func TestSignupStudent_InternalErrors(t *testing.T) {
	input := SignupStudentInput{
		StudentID: "CS2021001",
		Name:      "Abebe",
		Email:     "abebe@ddu.edu.et",
		Password:  "secret123",
	}

	t.Run("store failure", func(t *testing.T) {
		repo := newFakeStudentRepo()
		repo.findErr = errors.New("connection refused")

		_, err := newSignupUseCase(repo, &fakePasswordService{}).Execute(context.Background(), input)
		require.Error(t, err)
		assert.Equal(t, domainerror.ErrCodeInternal, domainerror.AuthErrorCodeOf(err))
	})

	t.Run("hash failure", func(t *testing.T) {
		repo := newFakeStudentRepo()

		_, err := newSignupUseCase(repo, &fakePasswordService{hashErr: errors.New("boom")}).Execute(context.Background(), input)
		require.Error(t, err)
		assert.Equal(t, domainerror.ErrCodeInternal, domainerror.AuthErrorCodeOf(err))
		assert.Empty(t, repo.students)
	})
}

func TestSignupStudent_PasswordByteLimit(t *testing.T) {
	input := SignupStudentInput{
		StudentID: "CS2021001",
		Name:      "Abebe",
		Email:     "abebe@ddu.edu.et",
		Password:  strings.Repeat("é", 37),
	}

	t.Run("over 72 bytes is rejected before hashing", func(t *testing.T) {
		repo := newFakeStudentRepo()
		_, err := newSignupUseCase(repo, &fakePasswordService{}).Execute(context.Background(), input)
		require.Error(t, err)
		assert.Equal(t, domainerror.ErrCodeMissingFields, domainerror.AuthErrorCodeOf(err))
		assert.ErrorIs(t, err, domainerror.ErrPasswordTooLong)
		_, err = repo.FindByStudentID(context.Background(), "CS2021001")
		assert.ErrorIs(t, err, domainerror.ErrStudentNotFound)
	})

	t.Run("exactly 72 bytes is accepted", func(t *testing.T) {
		in := input
		in.Password = strings.Repeat("é", 36)
		_, err := newSignupUseCase(newFakeStudentRepo(), &fakePasswordService{}).Execute(context.Background(), in)
		assert.NoError(t, err)
	})

	t.Run("hasher length error is a client error", func(t *testing.T) {
		in := input
		in.Password = "secret123"
		pw := &fakePasswordService{hashErr: domainerror.ErrPasswordTooLong}
		_, err := newSignupUseCase(newFakeStudentRepo(), pw).Execute(context.Background(), in)
		assert.Equal(t, domainerror.ErrCodeMissingFields, domainerror.AuthErrorCodeOf(err))
	})
}
