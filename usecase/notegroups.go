package usecase

import (
	"errors"
	"fmt"
	"strings"

	"notekeep/dto"
	"notekeep/model"
	"notekeep/repository"
)

// ErrInvalidInput tags validation failures so handlers can map them to 400.
var ErrInvalidInput = errors.New("invalid input")

type NoteGroupsService struct {
	GroupsRepo *repository.NoteGroupsRepo
}

func (svc *NoteGroupsService) CreateGroup(userID uint, title string) (*model.NoteGroup, error) {
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return nil, fmt.Errorf("%w: title must be at least 3 characters", ErrInvalidInput)
	}

	group := &model.NoteGroup{
		Title:  title,
		UserID: userID,
	}

	if err := svc.GroupsRepo.CreateNoteGroup(group); err != nil {
		return nil, err
	}

	return group, nil
}

func (svc *NoteGroupsService) GetGroup(id uint) (*model.NoteGroup, error) {
	return svc.GroupsRepo.GetNoteGroup(id)
}

func (svc *NoteGroupsService) ListForUser(userID uint) ([]model.NoteGroup, error) {
	return svc.GroupsRepo.GetUserNoteGroups(userID)
}

// ListOptions projects a user's groups into the {id, name} shape the
// typeahead selector consumes.
func (svc *NoteGroupsService) ListOptions(userID uint) ([]dto.NoteGroupOption, error) {
	groups, err := svc.GroupsRepo.GetUserNoteGroups(userID)
	if err != nil {
		return nil, err
	}

	options := make([]dto.NoteGroupOption, 0, len(groups))
	for _, g := range groups {
		options = append(options, dto.NoteGroupOption{ID: g.ID, Name: g.Title})
	}
	return options, nil
}

func (svc *NoteGroupsService) UpdateTitle(group *model.NoteGroup, title string) error {
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return fmt.Errorf("%w: title must be at least 3 characters", ErrInvalidInput)
	}

	group.Title = title
	return svc.GroupsRepo.UpdateNoteGroup(group)
}

// Sidebar builds the nested groups-with-notes payload for the navigation
// sidebar, newest groups first.
func (svc *NoteGroupsService) Sidebar(userID uint) ([]dto.SidebarGroup, error) {
	groups, err := svc.GroupsRepo.GetUserNoteGroupsWithNotes(userID)
	if err != nil {
		return nil, err
	}

	sidebar := make([]dto.SidebarGroup, 0, len(groups))
	for _, g := range groups {
		entry := dto.SidebarGroup{
			ID:    g.ID,
			Title: g.Title,
			Notes: make([]dto.SidebarNote, 0, len(g.Notes)),
		}
		for _, n := range g.Notes {
			entry.Notes = append(entry.Notes, dto.SidebarNote{
				ID:          n.ID,
				Title:       n.Title,
				URL:         fmt.Sprintf("/notes/%d", n.ID),
				Description: n.Description,
				PathImage:   n.PathImage,
				PathType:    n.PathType,
			})
		}
		sidebar = append(sidebar, entry)
	}

	return sidebar, nil
}
