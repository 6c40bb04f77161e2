package handlers

import (
	"context"
	"io"

	"github.com/escotech/escotech-api/pkg/apperrors"
	"github.com/escotech/escotech-api/pkg/mailer"
	"github.com/escotech/escotech-api/pkg/media"
	"github.com/escotech/escotech-api/pkg/models"
	"github.com/escotech/escotech-api/pkg/repositories"
)

// mockProjectRepo is a configurable in-memory ProjectRepository.
type mockProjectRepo struct {
	projects   []*models.Project
	project    *models.Project
	err        error
	lastFilter repositories.ProjectFilter
	created    *models.Project
	updated    *models.Project
	deletedID  int64
}

func (m *mockProjectRepo) Find(ctx context.Context, filter repositories.ProjectFilter) ([]*models.Project, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.projects, nil
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id int64) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.project == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.project, nil
}

func (m *mockProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if m.err != nil {
		return m.err
	}
	project.ID = 1
	m.created = project
	return nil
}

func (m *mockProjectRepo) Update(ctx context.Context, project *models.Project) error {
	if m.err != nil {
		return m.err
	}
	m.updated = project
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

// mockTeamRepo is a configurable in-memory TeamMemberRepository.
type mockTeamRepo struct {
	members   []*models.TeamMember
	member    *models.TeamMember
	err       error
	created   *models.TeamMember
	updated   *models.TeamMember
	deletedID int64
}

func (m *mockTeamRepo) Find(ctx context.Context) ([]*models.TeamMember, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.members, nil
}

func (m *mockTeamRepo) FindByID(ctx context.Context, id int64) (*models.TeamMember, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.member == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.member, nil
}

func (m *mockTeamRepo) Create(ctx context.Context, member *models.TeamMember) error {
	if m.err != nil {
		return m.err
	}
	member.ID = 1
	m.created = member
	return nil
}

func (m *mockTeamRepo) Update(ctx context.Context, member *models.TeamMember) error {
	if m.err != nil {
		return m.err
	}
	m.updated = member
	return nil
}

func (m *mockTeamRepo) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

// mockServiceRepo is a configurable in-memory ServiceRepository.
type mockServiceRepo struct {
	services  []*models.Service
	service   *models.Service
	err       error
	created   *models.Service
	updated   *models.Service
	deletedID int64
}

func (m *mockServiceRepo) Find(ctx context.Context) ([]*models.Service, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.services, nil
}

func (m *mockServiceRepo) FindByID(ctx context.Context, id int64) (*models.Service, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.service == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.service, nil
}

func (m *mockServiceRepo) Create(ctx context.Context, service *models.Service) error {
	if m.err != nil {
		return m.err
	}
	service.ID = 1
	m.created = service
	return nil
}

func (m *mockServiceRepo) Update(ctx context.Context, service *models.Service) error {
	if m.err != nil {
		return m.err
	}
	m.updated = service
	return nil
}

func (m *mockServiceRepo) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

// mockMessageRepo is a configurable in-memory MessageRepository.
type mockMessageRepo struct {
	messages  []*models.Message
	message   *models.Message
	err       error
	created   *models.Message
	setReadID int64
	setReadTo bool
	deletedID int64
}

func (m *mockMessageRepo) Find(ctx context.Context) ([]*models.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.messages, nil
}

func (m *mockMessageRepo) FindByID(ctx context.Context, id int64) (*models.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.message == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.message, nil
}

func (m *mockMessageRepo) Create(ctx context.Context, message *models.Message) error {
	if m.err != nil {
		return m.err
	}
	message.ID = 1
	m.created = message
	return nil
}

func (m *mockMessageRepo) SetRead(ctx context.Context, id int64, isRead bool) (*models.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.message == nil {
		return nil, apperrors.ErrNotFound
	}
	m.setReadID = id
	m.setReadTo = isRead
	m.message.IsRead = isRead
	return m.message, nil
}

func (m *mockMessageRepo) Delete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

// mockAdminRepo is a configurable in-memory AdminRepository.
type mockAdminRepo struct {
	admin   *models.Admin
	err     error
	created *models.Admin
}

func (m *mockAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	if m.err != nil {
		return m.err
	}
	admin.ID = 1
	m.created = admin
	return nil
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id int64) (*models.Admin, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.admin == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.admin, nil
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.admin == nil || m.admin.Email != email {
		return nil, apperrors.ErrNotFound
	}
	return m.admin, nil
}

type uploadCall struct {
	folder   string
	filename string
}

// mockUploader records uploads and destroys.
type mockUploader struct {
	asset      *media.Asset
	uploadErr  error
	destroyErr error
	uploads    []uploadCall
	destroyed  []string
}

func (m *mockUploader) Upload(ctx context.Context, r io.Reader, folder, filename string) (*media.Asset, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	m.uploads = append(m.uploads, uploadCall{folder: folder, filename: filename})
	if m.asset != nil {
		return m.asset, nil
	}
	return &media.Asset{
		URL:      "https://res.cloudinary.com/demo/image/upload/v1/escotech/general/mock.jpg",
		PublicID: "escotech/general/mock",
	}, nil
}

func (m *mockUploader) Destroy(ctx context.Context, publicID string) error {
	m.destroyed = append(m.destroyed, publicID)
	return m.destroyErr
}

// mockMailer records notification sends.
type mockMailer struct {
	err  error
	sent []mailer.ContactData
}

func (m *mockMailer) SendContactNotification(data mailer.ContactData) error {
	m.sent = append(m.sent, data)
	return m.err
}
