package usecase

import (
	"fmt"
	"mime/multipart"
	"strings"

	"notekeep/dto"
	"notekeep/model"
	"notekeep/repository"
	"notekeep/services"
)

type NotesService struct {
	NotesRepo  *repository.NotesRepo
	GroupsRepo *repository.NoteGroupsRepo
	UploadsDir string
}

// CreateNoteInput carries the multipart fields of POST /api/notes.
// ImageFile and ImageURL are mutually exclusive.
type CreateNoteInput struct {
	Title       string
	Description string
	NoteGroupID uint
	ImageFile   *multipart.FileHeader
	ImageURL    string
}

func validateNoteFields(title, description string) error {
	if len(strings.TrimSpace(title)) < 3 {
		return fmt.Errorf("%w: title must be at least 3 characters", ErrInvalidInput)
	}
	if len(strings.TrimSpace(description)) < 10 {
		return fmt.Errorf("%w: description must be at least 10 characters", ErrInvalidInput)
	}
	return nil
}

// CreateNote validates the input, resolves the image source, and persists
// the note. The group must exist and belong to the acting user.
func (svc *NotesService) CreateNote(userID uint, pseudo string, input CreateNoteInput) (*model.Note, error) {
	if err := validateNoteFields(input.Title, input.Description); err != nil {
		return nil, err
	}

	if _, err := svc.GroupsRepo.GetUserNoteGroup(input.NoteGroupID, userID); err != nil {
		return nil, err
	}

	image, err := services.ResolveImageSource(input.ImageFile, input.ImageURL, svc.UploadsDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	note := &model.Note{
		Title:         strings.TrimSpace(input.Title),
		Description:   services.SanitizeDescription(input.Description),
		UserID:        userID,
		CreatorPseudo: pseudo,
		NoteGroupID:   input.NoteGroupID,
	}
	note.SetImage(image)

	if err := svc.NotesRepo.CreateNote(note); err != nil {
		return nil, err
	}

	return note, nil
}

func (svc *NotesService) GetNote(id uint) (*model.Note, error) {
	return svc.NotesRepo.GetNote(id)
}

// NotesInGroup returns the group and its notes for one user. The ownership
// filter is part of the query: someone else's group reads as not found.
func (svc *NotesService) NotesInGroup(groupID, userID uint) (*model.NoteGroup, []model.Note, error) {
	group, err := svc.GroupsRepo.GetUserNoteGroup(groupID, userID)
	if err != nil {
		return nil, nil, err
	}

	notes, err := svc.NotesRepo.GetNotesByGroup(groupID, userID)
	if err != nil {
		return nil, nil, err
	}

	return group, notes, nil
}

// UpdateNote applies a JSON update to an already-fetched, already-authorized
// note.
func (svc *NotesService) UpdateNote(note *model.Note, req dto.UpdateNoteRequest) error {
	if err := validateNoteFields(req.Title, req.Description); err != nil {
		return err
	}

	if !model.ValidPathType(req.PathType) {
		return fmt.Errorf("%w: unknown pathType %q", ErrInvalidInput, req.PathType)
	}
	if req.PathType != model.PathTypeNone && req.PathImage == "" {
		return fmt.Errorf("%w: pathImage is required for pathType %q", ErrInvalidInput, req.PathType)
	}

	note.Title = strings.TrimSpace(req.Title)
	note.Description = services.SanitizeDescription(req.Description)
	note.SetImage(model.ImageSource{Kind: req.PathType, Path: req.PathImage})

	return svc.NotesRepo.UpdateNote(note)
}

func (svc *NotesService) DeleteNote(id uint) error {
	return svc.NotesRepo.DeleteNote(id)
}
