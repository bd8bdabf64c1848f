package repository

import (
	"errors"

	"gorm.io/gorm"

	"notekeep/model"
	"notekeep/utils"
)

type NotesRepo struct {
	DB *gorm.DB
}

func GetNotesRepo(db *gorm.DB) *NotesRepo {
	return &NotesRepo{DB: db}
}

func (r *NotesRepo) CreateNote(note *model.Note) error {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	if note.UserID == 0 {
		utils.TrackError("database", "invalid_note_data")
		return errors.New("user ID is required")
	}

	if err := r.DB.Create(note).Error; err != nil {
		utils.TrackError("database", "note_creation_failed")
		return err
	}

	utils.TrackNoteOperation("create")
	return nil
}

// GetNote fetches a note by id. Ownership is checked by the caller so that
// a wrong owner yields 403, not 404.
func (r *NotesRepo) GetNote(id uint) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var note model.Note
	err := r.DB.First(&note, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	return &note, nil
}

// GetNotesByGroup lists the user's notes inside one group.
func (r *NotesRepo) GetNotesByGroup(groupID, userID uint) ([]model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var notes []model.Note
	err := r.DB.Where("note_group_id = ? AND user_id = ?", groupID, userID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *NotesRepo) UpdateNote(note *model.Note) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result := r.DB.Model(&model.Note{}).Where("id = ?", note.ID).Updates(map[string]interface{}{
		"title":       note.Title,
		"description": note.Description,
		"path_type":   note.PathType,
		"path_image":  note.PathImage,
	})
	if result.Error != nil {
		utils.TrackError("database", "note_update_failed")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}

	utils.TrackNoteOperation("update")
	return nil
}

func (r *NotesRepo) DeleteNote(id uint) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result := r.DB.Delete(&model.Note{}, id)
	if result.Error != nil {
		utils.TrackError("database", "note_delete_failed")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}

	utils.TrackNoteOperation("delete")
	return nil
}

func (r *NotesRepo) CountUserNotes(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Note{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
