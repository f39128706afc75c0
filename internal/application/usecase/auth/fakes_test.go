package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ddu-connect/backend/internal/application/adapter"
	"github.com/ddu-connect/backend/internal/domain/entity"
	domainerror "github.com/ddu-connect/backend/internal/domain/error"
)

// fakeStudentRepo is an in-memory StudentRepository keyed by student ID.
type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[string]entity.Student

	findErr  error
	saveErr  error
	resetErr error
	// beforeReset runs inside ResetPassword before the compare-and-set.
	beforeReset func()
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]entity.Student)}
}

func (r *fakeStudentRepo) Create(_ context.Context, student *entity.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.StudentID == student.StudentID || s.Email == student.Email {
			return domainerror.ErrDuplicateAccount
		}
	}
	r.students[student.StudentID] = *student
	return nil
}

func (r *fakeStudentRepo) find(match func(entity.Student) bool) (*entity.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, s := range r.students {
		if match(s) {
			copied := s
			return &copied, nil
		}
	}
	return nil, domainerror.ErrStudentNotFound
}

func (r *fakeStudentRepo) FindByStudentID(_ context.Context, studentID string) (*entity.Student, error) {
	return r.find(func(s entity.Student) bool { return s.StudentID == studentID })
}

func (r *fakeStudentRepo) FindByEmail(_ context.Context, email string) (*entity.Student, error) {
	return r.find(func(s entity.Student) bool { return s.Email == email })
}

func (r *fakeStudentRepo) FindByStudentIDAndEmail(_ context.Context, studentID, email string) (*entity.Student, error) {
	return r.find(func(s entity.Student) bool { return s.StudentID == studentID && s.Email == email })
}

func (r *fakeStudentRepo) ExistsByStudentID(_ context.Context, studentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return false, r.findErr
	}
	_, ok := r.students[studentID]
	return ok, nil
}

func (r *fakeStudentRepo) SaveOTP(_ context.Context, student *entity.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	s, ok := r.students[student.StudentID]
	if !ok {
		return domainerror.ErrStudentNotFound
	}
	s.SetOTP(*student.OTP, *student.OTPExpiry, student.UpdatedAt)
	r.students[student.StudentID] = s
	return nil
}

func (r *fakeStudentRepo) ResetPassword(_ context.Context, student *entity.Student, consumedOTP string) (bool, error) {
	if r.beforeReset != nil {
		r.beforeReset()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resetErr != nil {
		return false, r.resetErr
	}
	s, ok := r.students[student.StudentID]
	if !ok || s.Email != student.Email || s.OTP == nil || *s.OTP != consumedOTP {
		return false, nil
	}
	s.PasswordHash = student.PasswordHash
	s.OTP = student.OTP
	s.OTPExpiry = student.OTPExpiry
	s.UpdatedAt = student.UpdatedAt
	r.students[student.StudentID] = s
	return true, nil
}

// issueCode stores a pending code for studentID valid for 60 seconds from now.
func (r *fakeStudentRepo) issueCode(studentID, code string, now time.Time) {
	s := r.get(studentID)
	s.SetOTP(code, now.Add(60*time.Second), now)
	if err := r.SaveOTP(context.Background(), &s); err != nil {
		panic(err)
	}
}

func (r *fakeStudentRepo) get(studentID string) entity.Student {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.students[studentID]
}

// fakePasswordService "hashes" by prefixing.
type fakePasswordService struct {
	hashErr error
}

func (p *fakePasswordService) HashPassword(password string) (string, error) {
	if p.hashErr != nil {
		return "", p.hashErr
	}
	return "hashed:" + password, nil
}

func (p *fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if strings.TrimPrefix(hashedPassword, "hashed:") != password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokenService struct {
	issued []string
}

func (t *fakeTokenService) IssueSessionToken(studentID, name string) (string, error) {
	token := "token-for-" + studentID
	t.issued = append(t.issued, token)
	return token, nil
}

func (t *fakeTokenService) ValidateSessionToken(token string) (*adapter.SessionClaims, error) {
	return nil, errors.New("not implemented")
}

// sequenceOTPService hands out codes in order.
type sequenceOTPService struct {
	mu    sync.Mutex
	codes []string
	next  int
}

func (s *sequenceOTPService) Generate(now time.Time) (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := s.codes[s.next%len(s.codes)]
	s.next++
	return code, now.Add(60 * time.Second)
}

func (s *sequenceOTPService) ValidFor() time.Duration {
	return 60 * time.Second
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []adapter.SendOTPEmailInput
	err  error
}

func (e *fakeEmailService) SendOTPEmail(_ context.Context, input adapter.SendOTPEmailInput) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.sent = append(e.sent, input)
	return nil
}

func (e *fakeEmailService) last() adapter.SendOTPEmailInput {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sent[len(e.sent)-1]
}

type staticAllowlist map[string]bool

func (a staticAllowlist) Contains(studentID string) bool {
	return a[studentID]
}

// noopLocker records lock keys without blocking.
type noopLocker struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (l *noopLocker) Lock(_ context.Context, key string) (adapter.UnlockFunc, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	l.keys = append(l.keys, key)
	l.mu.Unlock()
	return func() {}, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

// seedStudent stores a student whose password is "secret123".
func seedStudent(repo *fakeStudentRepo, studentID, name, email string) {
	s := entity.NewStudent(studentID, name, email, "hashed:secret123", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	repo.students[studentID] = *s
}
