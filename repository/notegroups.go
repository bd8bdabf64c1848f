package repository

import (
	"errors"

	"gorm.io/gorm"

	"notekeep/model"
	"notekeep/utils"
)

type NoteGroupsRepo struct {
	DB *gorm.DB
}

func GetNoteGroupsRepo(db *gorm.DB) *NoteGroupsRepo {
	return &NoteGroupsRepo{DB: db}
}

func (r *NoteGroupsRepo) CreateNoteGroup(group *model.NoteGroup) error {
	timer := utils.TrackDBOperation("insert", "note_groups")
	defer timer.ObserveDuration()

	if group.UserID == 0 {
		utils.TrackError("database", "invalid_note_group_data")
		return errors.New("user ID is required")
	}

	return r.DB.Create(group).Error
}

// GetNoteGroup fetches a group by id regardless of owner; the caller decides
// whether an ownership check applies.
func (r *NoteGroupsRepo) GetNoteGroup(id uint) (*model.NoteGroup, error) {
	timer := utils.TrackDBOperation("find", "note_groups")
	defer timer.ObserveDuration()

	var group model.NoteGroup
	err := r.DB.First(&group, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteGroupNotFound
		}
		return nil, err
	}

	return &group, nil
}

// GetUserNoteGroup fetches a group only when it belongs to the given user.
func (r *NoteGroupsRepo) GetUserNoteGroup(id, userID uint) (*model.NoteGroup, error) {
	timer := utils.TrackDBOperation("find", "note_groups")
	defer timer.ObserveDuration()

	var group model.NoteGroup
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteGroupNotFound
		}
		return nil, err
	}

	return &group, nil
}

// GetUserNoteGroups lists a user's groups newest-first.
func (r *NoteGroupsRepo) GetUserNoteGroups(userID uint) ([]model.NoteGroup, error) {
	timer := utils.TrackDBOperation("find", "note_groups")
	defer timer.ObserveDuration()

	var groups []model.NoteGroup
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&groups).Error
	if err != nil {
		return nil, err
	}

	return groups, nil
}

// GetUserNoteGroupsWithNotes lists a user's groups newest-first with their
// notes preloaded, for the sidebar payload.
func (r *NoteGroupsRepo) GetUserNoteGroupsWithNotes(userID uint) ([]model.NoteGroup, error) {
	timer := utils.TrackDBOperation("find", "note_groups")
	defer timer.ObserveDuration()

	var groups []model.NoteGroup
	err := r.DB.Where("user_id = ?", userID).
		Preload("Notes").
		Order("created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *NoteGroupsRepo) UpdateNoteGroup(group *model.NoteGroup) error {
	timer := utils.TrackDBOperation("update", "note_groups")
	defer timer.ObserveDuration()

	result := r.DB.Model(&model.NoteGroup{}).Where("id = ?", group.ID).Update("title", group.Title)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteGroupNotFound
	}

	return nil
}

func (r *NoteGroupsRepo) CountUserNoteGroups(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.NoteGroup{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
