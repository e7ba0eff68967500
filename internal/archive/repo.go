package archive

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Providers

func (r *Repo) CreateProvider(ctx context.Context, p *Provider) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repo) GetProvider(ctx context.Context, id string) (*Provider, error) {
	var p Provider
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) GetProviderByName(ctx context.Context, name string) (*Provider, error) {
	var p Provider
	if err := r.db.WithContext(ctx).First(&p, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) ListProviders(ctx context.Context) ([]Provider, error) {
	var ps []Provider
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

// EnsureProvider creates the provider if no row with its name exists yet.
func (r *Repo) EnsureProvider(ctx context.Context, name, displayName, baseURL string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Provider{}).
		Where("name = ?", name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.CreateProvider(ctx, &Provider{
		Name:        name,
		DisplayName: displayName,
		BaseAPIURL:  baseURL,
	})
}

// API keys

func (r *Repo) CreateAPIKey(ctx context.Context, k *APIKey) error {
	if k.ID == "" {
		k.ID = NewID()
	}
	return r.db.WithContext(ctx).Create(k).Error
}

func (r *Repo) GetAPIKey(ctx context.Context, id string) (*APIKey, error) {
	var k APIKey
	if err := r.db.WithContext(ctx).First(&k, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *Repo) ListAPIKeys(ctx context.Context) ([]APIKey, error) {
	var ks []APIKey
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ks).Error; err != nil {
		return nil, err
	}
	return ks, nil
}

func (r *Repo) SaveAPIKey(ctx context.Context, k *APIKey) error {
	return r.db.WithContext(ctx).Save(k).Error
}

func (r *Repo) DeleteAPIKey(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&APIKey{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TouchAPIKeyLastUsed records a successful use of the key inside a run.
func (r *Repo) TouchAPIKeyLastUsed(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&APIKey{}).
		Where("id = ?", id).
		Update("last_used_at", at).Error
}

// Projects

func (r *Repo) CreateProject(ctx context.Context, p *Project) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repo) GetProject(ctx context.Context, id string) (*Project, error) {
	var p Project
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) ListProjects(ctx context.Context) ([]Project, error) {
	var ps []Project
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *Repo) SaveProject(ctx context.Context, p *Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *Repo) DeleteProject(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) AssignProject(ctx context.Context, conversationID, projectID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ConversationProject{}).
		Where("conversation_id = ? AND project_id = ?", conversationID, projectID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	err := r.db.WithContext(ctx).Create(&ConversationProject{
		ConversationID: conversationID,
		ProjectID:      projectID,
	}).Error
	return err == nil, err
}

func (r *Repo) RemoveProject(ctx context.Context, conversationID, projectID string) error {
	res := r.db.WithContext(ctx).
		Where("conversation_id = ? AND project_id = ?", conversationID, projectID).
		Delete(&ConversationProject{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) ProjectsForConversation(ctx context.Context, conversationID string) ([]Project, error) {
	var ps []Project
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_projects cp ON cp.project_id = projects.id").
		Where("cp.conversation_id = ?", conversationID).
		Order("projects.name ASC").
		Find(&ps).Error
	if err != nil {
		return nil, err
	}
	return ps, nil
}

// Conversations

// ConversationFilter narrows and pages a conversation listing.
type ConversationFilter struct {
	ProviderID   string
	ProjectID    string
	FromDate     *time.Time
	ToDate       *time.Time
	Search       string
	HasArtifacts *bool
	Page         int
	PageSize     int
}

func (r *Repo) CreateConversation(ctx context.Context, c *Conversation) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return r.db.WithContext(ctx).Create(c).Error
}

// GetConversation loads the full subtree, messages in sequence order.
func (r *Repo) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	var c Conversation
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_index ASC")
		}).
		Preload("Artifacts").
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) ListConversations(ctx context.Context, f ConversationFilter) ([]Conversation, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 || f.PageSize > 200 {
		f.PageSize = 50
	}

	q := r.db.WithContext(ctx).Model(&Conversation{})

	if f.ProviderID != "" {
		q = q.Where("provider_id = ?", f.ProviderID)
	}
	if f.ProjectID != "" {
		q = q.Where("id IN (?)", r.db.Model(&ConversationProject{}).
			Select("conversation_id").Where("project_id = ?", f.ProjectID))
	}
	if f.FromDate != nil {
		q = q.Where("started_at >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("started_at <= ?", *f.ToDate)
	}
	if f.Search != "" {
		term := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR id IN (?)", term,
			r.db.Model(&Message{}).Select("conversation_id").Where("content LIKE ?", term))
	}
	if f.HasArtifacts != nil {
		sub := r.db.Model(&Artifact{}).Select("conversation_id")
		if *f.HasArtifacts {
			q = q.Where("id IN (?)", sub)
		} else {
			q = q.Where("id NOT IN (?)", sub)
		}
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var convs []Conversation
	err := q.Order("started_at DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&convs).Error
	if err != nil {
		return nil, 0, err
	}
	return convs, total, nil
}

func (r *Repo) CountMessages(ctx context.Context, conversationID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Message{}).
		Where("conversation_id = ?", conversationID).Count(&n).Error
	return n, err
}

func (r *Repo) HasArtifacts(ctx context.Context, conversationID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Artifact{}).
		Where("conversation_id = ?", conversationID).Count(&n).Error
	return n > 0, err
}
