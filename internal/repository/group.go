package repository

import (
	"errors"

	"github.com/ahmad-fahrudin/wablast-app/internal/model"
	"gorm.io/gorm"
)

var ErrGroupNotFound = errors.New("GROUP_NOT_FOUND")

type GroupRepository interface {
	GetByID(userID, id int64) (*model.Group, error)
	GetMembers(groupID int64) ([]model.Contact, error)
}

type Group struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &Group{db: db}
}

func (g *Group) GetByID(userID, id int64) (*model.Group, error) {
	var group model.Group

	err := g.db.Where("user_id = ? AND id = ?", userID, id).First(&group).Error
	if err == nil {
		return &group, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGroupNotFound
	}

	return nil, err
}

// GetMembers returns the group's contacts in the order they were added.
// Preload cannot order by pivot columns, hence the explicit join.
func (g *Group) GetMembers(groupID int64) ([]model.Contact, error) {
	var contacts []model.Contact

	err := g.db.Model(&model.Contact{}).
		Joins("JOIN group_contact_pivots p ON p.contact_id = contacts.id").
		Where("p.group_id = ?", groupID).
		Order("p.id ASC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}

	return contacts, nil
}
