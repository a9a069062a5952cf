package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/internal/security"
	"github.com/Leighh-compassiontracker/Compassion-Tracker-New-sub000/pkg/model"
)

// MockNoteStore is a mock implementation of NoteStore
type MockNoteStore struct {
	mock.Mock
}

func (m *MockNoteStore) Create(ctx context.Context, n *model.Note) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNoteStore) FindByID(ctx context.Context, id string) (*model.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteStore) FindByCareRecipientAndRange(ctx context.Context, recipientID string, start, end time.Time) ([]model.Note, error) {
	args := m.Called(ctx, recipientID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteStore) Update(ctx context.Context, n *model.Note) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNoteStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func testCipher(t *testing.T) *security.Encryptor {
	t.Helper()
	enc, err := security.NewEncryptor([]byte(strings.Repeat("k", 32)))
	require.NoError(t, err)
	return enc
}

func TestCreateNote_EncryptsContentAtRest(t *testing.T) {
	mockStore := new(MockNoteStore)
	cipher := testCipher(t)
	service := NewNoteService(mockStore, cipher, nopAuditor{}, zap.NewNop())

	plaintext := "Dad seemed more alert today."
	var stored string
	mockStore.On("Create", mock.Anything, mock.AnythingOfType("*model.Note")).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*model.Note).Content
	}).Return(nil)

	note := &model.Note{CareRecipientID: "recipient-1", Content: plaintext}
	err := service.CreateNote(context.Background(), note)

	assert.NoError(t, err)
	assert.NotEqual(t, plaintext, stored)
	// The caller's copy keeps the plaintext.
	assert.Equal(t, plaintext, note.Content)

	decrypted, err := cipher.Decrypt(stored)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestGetNote_DecryptsContent(t *testing.T) {
	mockStore := new(MockNoteStore)
	cipher := testCipher(t)
	service := NewNoteService(mockStore, cipher, nopAuditor{}, zap.NewNop())

	plaintext := "Slept through the night."
	sealed, err := cipher.Encrypt(plaintext)
	require.NoError(t, err)

	mockStore.On("FindByID", mock.Anything, "note-1").Return(&model.Note{ID: "note-1", Content: sealed}, nil)

	note, err := service.GetNote(context.Background(), "note-1")

	assert.NoError(t, err)
	assert.Equal(t, plaintext, note.Content)
}

func TestNoteService_NilCipherStoresPlaintext(t *testing.T) {
	mockStore := new(MockNoteStore)
	service := NewNoteService(mockStore, nil, nopAuditor{}, zap.NewNop())

	var stored string
	mockStore.On("Create", mock.Anything, mock.AnythingOfType("*model.Note")).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*model.Note).Content
	}).Return(nil)

	err := service.CreateNote(context.Background(), &model.Note{CareRecipientID: "recipient-1", Content: "plain"})

	assert.NoError(t, err)
	assert.Equal(t, "plain", stored)
}

func TestCreateNote_ValidationErrors(t *testing.T) {
	service := NewNoteService(nil, nil, nopAuditor{}, zap.NewNop())
	ctx := context.Background()

	err := service.CreateNote(ctx, &model.Note{Content: "missing recipient"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "care recipient ID is required")

	err = service.CreateNote(ctx, &model.Note{CareRecipientID: "recipient-1"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "note content is required")
}
