package service

import (
	"errors"

	"github.com/ahmad-fahrudin/wablast-app/internal/repository"
	"go.uber.org/zap"
)

type DestinationKind string

const (
	DestinationContact DestinationKind = "contact"
	DestinationGroup   DestinationKind = "group"
)

// Destination is a fully resolved blast target. Address is the raw phone
// number or WhatsApp group id; the gateway client adds the chat suffix at
// send time. Exactly one of ContactID and GroupID is set, and only for
// targets backed by a stored row.
type Destination struct {
	Kind        DestinationKind
	Address     string
	DisplayName string
	ContactID   *int64
	GroupID     *int64
}

// RecipientResolver turns recipient references into concrete destinations.
// Entries that cannot be resolved are skipped, not failed: manual entries
// without a phone, unknown ids, groups without a gateway group id. A group
// blast only covers real WhatsApp groups (the external id decides, not the
// stored group type); a broadcast blast expands each referenced group to its
// member contacts in the order the members were added.
type RecipientResolver interface {
	Resolve(userID int64, recipientType RecipientType, refs []RecipientRef) ([]Destination, error)
}

type resolver struct {
	contactRepo repository.ContactRepository
	groupRepo   repository.GroupRepository
	logger      *zap.Logger
}

func NewRecipientResolver(contactRepo repository.ContactRepository, groupRepo repository.GroupRepository,
	logger *zap.Logger) RecipientResolver {
	return &resolver{contactRepo: contactRepo, groupRepo: groupRepo, logger: logger}
}

func (r *resolver) Resolve(userID int64, recipientType RecipientType, refs []RecipientRef) ([]Destination, error) {
	destinations := make([]Destination, 0, len(refs))

	for _, ref := range refs {
		var (
			expanded []Destination
			err      error
		)

		switch recipientType {
		case RecipientContact:
			expanded, err = r.resolveContact(userID, ref)
		case RecipientGroup:
			expanded, err = r.resolveGroup(userID, ref.ID)
		case RecipientBroadcast:
			expanded, err = r.resolveBroadcast(userID, ref.ID)
		default:
			r.logger.Warn("Unknown recipient type", zap.String("recipientType", string(recipientType)))
			return destinations, nil
		}

		if err != nil {
			return nil, err
		}

		destinations = append(destinations, expanded...)
	}

	return destinations, nil
}

func (r *resolver) resolveContact(userID int64, ref RecipientRef) ([]Destination, error) {
	if ref.Manual {
		if ref.Phone == "" {
			r.logger.Debug("Skipping manual recipient without phone", zap.Int64("userID", userID))
			return nil, nil
		}

		return []Destination{{Kind: DestinationContact, Address: ref.Phone, DisplayName: ref.Name}}, nil
	}

	if ref.Phone != "" {
		dst := Destination{Kind: DestinationContact, Address: ref.Phone, DisplayName: ref.Name}
		if ref.ID != 0 {
			id := ref.ID
			dst.ContactID = &id
		}

		return []Destination{dst}, nil
	}

	contact, err := r.contactRepo.GetByID(userID, ref.ID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			r.logger.Debug("Skipping unknown contact", zap.Int64("contactID", ref.ID))
			return nil, nil
		}

		return nil, ErrDatabase
	}

	if contact.Phone == "" {
		r.logger.Debug("Skipping contact without phone", zap.Int64("contactID", contact.ID))
		return nil, nil
	}

	id := contact.ID
	return []Destination{{Kind: DestinationContact, Address: contact.Phone, DisplayName: contact.Name, ContactID: &id}}, nil
}

func (r *resolver) resolveGroup(userID, groupID int64) ([]Destination, error) {
	group, err := r.groupRepo.GetByID(userID, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			r.logger.Debug("Skipping unknown group", zap.Int64("groupID", groupID))
			return nil, nil
		}

		return nil, ErrDatabase
	}

	if group.GroupID == nil || *group.GroupID == "" {
		r.logger.Debug("Skipping group without gateway id", zap.Int64("groupID", group.ID))
		return nil, nil
	}

	id := group.ID
	return []Destination{{Kind: DestinationGroup, Address: *group.GroupID, DisplayName: group.Subject, GroupID: &id}}, nil
}

func (r *resolver) resolveBroadcast(userID, groupID int64) ([]Destination, error) {
	group, err := r.groupRepo.GetByID(userID, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			r.logger.Debug("Skipping unknown broadcast group", zap.Int64("groupID", groupID))
			return nil, nil
		}

		return nil, ErrDatabase
	}

	members, err := r.groupRepo.GetMembers(group.ID)
	if err != nil {
		return nil, ErrDatabase
	}

	destinations := make([]Destination, 0, len(members))
	for _, member := range members {
		if member.Phone == "" {
			r.logger.Debug("Skipping group member without phone",
				zap.Int64("groupID", group.ID), zap.Int64("contactID", member.ID))
			continue
		}

		id := member.ID
		destinations = append(destinations, Destination{
			Kind:        DestinationContact,
			Address:     member.Phone,
			DisplayName: member.Name,
			ContactID:   &id,
		})
	}

	return destinations, nil
}
