package repo

import (
	"time"

	"github.com/onelab-dev/community-backend/internal/models"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Insert(session *models.Session) error
	FindValid(tokenHash string, now time.Time) (*models.Session, error)
	DeleteByTokenHash(tokenHash string) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Insert(session *models.Session) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) FindValid(tokenHash string, now time.Time) (*models.Session, error) {
	var session models.Session
	if err := r.db.Where("token_hash = ? AND expires > ?", tokenHash, now).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByTokenHash(tokenHash string) error {
	return r.db.Where("token_hash = ?", tokenHash).Delete(&models.Session{}).Error
}
