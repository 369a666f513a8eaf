package repository

import (
	"errors"

	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"gorm.io/gorm"
)

var ErrContactNotFound = errors.New("CONTACT_NOT_FOUND")

type ContactRepository interface {
	GetByID(userID, id int64) (*model.Contact, error)
}

type Contact struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &Contact{db: db}
}

func (c *Contact) GetByID(userID, id int64) (*model.Contact, error) {
	var contact model.Contact

	err := c.db.Where("user_id = ? AND id = ?", userID, id).First(&contact).Error
	if err == nil {
		return &contact, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContactNotFound
	}

	return nil, err
}
