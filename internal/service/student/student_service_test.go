package student_test

import (
	"context"
	"testing"

	"gymdesk-service/internal/domain/student"
	xerrors "gymdesk-service/internal/pkg/errors"
	"gymdesk-service/internal/repository/memory"
	studentsvc "gymdesk-service/internal/service/student"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService() *studentsvc.Service {
	return studentsvc.NewService(memory.NewStudentRepository(), zap.NewNop())
}

func createReq(email string) *student.CreateStudentRequest {
	return &student.CreateStudentRequest{
		Name:     "Ana Silva",
		Email:    email,
		Phone:    "11999999999",
		Password: "secret1",
	}
}

func TestRegister_Success(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	st, err := svc.Register(ctx, createReq("ana@x.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, st.ID)
	assert.NotEqual(t, "secret1", st.PasswordHash)

	got, err := svc.FindByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, st.ID, got.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, createReq("ana@x.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, createReq("ana@x.com"))
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrDuplicateEmail)
}

func TestRegister_Validation(t *testing.T) {
	svc := newService()

	req := createReq("ana@x.com")
	req.Password = "12345"
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestAuthenticate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	st, err := svc.Register(ctx, createReq("ana@x.com"))
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, st.ID, got.ID)

	_, err = svc.Authenticate(ctx, "ana@x.com", "wrong")
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestEdit(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	st, err := svc.Register(ctx, createReq("ana@x.com"))
	require.NoError(t, err)

	name := "Ana Souza"
	password := "newsecret"
	updated, err := svc.Edit(ctx, st.ID, &student.UpdateStudentRequest{
		Name:     &name,
		Password: &password,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", updated.Name)

	_, err = svc.Authenticate(ctx, "ana@x.com", "newsecret")
	require.NoError(t, err)

	short := "Jo"
	_, err = svc.Edit(ctx, st.ID, &student.UpdateStudentRequest{Name: &short})
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestSearchByName(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, createReq("ana@x.com"))
	require.NoError(t, err)

	req := createReq("bruno@x.com")
	req.Name = "Bruno Costa"
	_, err = svc.Register(ctx, req)
	require.NoError(t, err)

	found, err := svc.SearchByName(ctx, "bruno")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Bruno Costa", found[0].Name)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
