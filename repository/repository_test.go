package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"notekeep/model"
	"notekeep/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "notekeep.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := utils.MigrateModels(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, pseudo, email string) *model.User {
	t.Helper()

	user := &model.User{Pseudo: pseudo, Email: email, Password: "salt$hash"}
	if err := GetUserRepo(db).CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seeding user %s: %v", email, err)
	}
	return user
}

func TestFindUserByEmailMissReturnsNilNil(t *testing.T) {
	repo := GetUserRepo(newTestDB(t))

	user, err := repo.FindUserByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("FindUserByEmail: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user for unknown email, got %+v", user)
	}
}

func TestFindUserByIDNotFound(t *testing.T) {
	repo := GetUserRepo(newTestDB(t))

	if _, err := repo.FindUserByID(42); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestCreateUserRequiresEmailAndPassword(t *testing.T) {
	repo := GetUserRepo(newTestDB(t))

	if err := repo.CreateUser(context.Background(), &model.User{Pseudo: "x"}); err == nil {
		t.Error("expected an error for a user without email and password")
	}
}

func TestEnable2FARoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := GetUserRepo(db)
	user := seedUser(t, db, "alice", "alice@example.com")

	if err := repo.Enable2FA(user.ID, "SECRET"); err != nil {
		t.Fatalf("Enable2FA: %v", err)
	}
	got, err := repo.FindUserByID(user.ID)
	if err != nil {
		t.Fatalf("FindUserByID: %v", err)
	}
	if !got.TwoFactorEnabled || got.TwoFactorSecret != "SECRET" {
		t.Errorf("after Enable2FA: enabled=%v secret=%q", got.TwoFactorEnabled, got.TwoFactorSecret)
	}

	if err := repo.Disable2FA(user.ID); err != nil {
		t.Fatalf("Disable2FA: %v", err)
	}
	got, err = repo.FindUserByID(user.ID)
	if err != nil {
		t.Fatalf("FindUserByID: %v", err)
	}
	if got.TwoFactorEnabled || got.TwoFactorSecret != "" {
		t.Errorf("after Disable2FA: enabled=%v secret=%q", got.TwoFactorEnabled, got.TwoFactorSecret)
	}
}

func TestGetUserNoteGroupEnforcesOwnership(t *testing.T) {
	db := newTestDB(t)
	repo := GetNoteGroupsRepo(db)
	owner := seedUser(t, db, "owner", "owner@example.com")
	other := seedUser(t, db, "other", "other@example.com")

	group := &model.NoteGroup{Title: "Travail", UserID: owner.ID}
	if err := repo.CreateNoteGroup(group); err != nil {
		t.Fatalf("CreateNoteGroup: %v", err)
	}

	if _, err := repo.GetUserNoteGroup(group.ID, owner.ID); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := repo.GetUserNoteGroup(group.ID, other.ID); !errors.Is(err, ErrNoteGroupNotFound) {
		t.Errorf("foreign lookup err = %v, want ErrNoteGroupNotFound", err)
	}
	// The unscoped fetch still sees it.
	if _, err := repo.GetNoteGroup(group.ID); err != nil {
		t.Errorf("GetNoteGroup: %v", err)
	}
}

func TestUpdateNoteGroupUnknownID(t *testing.T) {
	repo := GetNoteGroupsRepo(newTestDB(t))

	err := repo.UpdateNoteGroup(&model.NoteGroup{ID: 999, Title: "Renamed"})
	if !errors.Is(err, ErrNoteGroupNotFound) {
		t.Errorf("err = %v, want ErrNoteGroupNotFound", err)
	}
}

func TestNoteLifecycle(t *testing.T) {
	db := newTestDB(t)
	groups := GetNoteGroupsRepo(db)
	notes := GetNotesRepo(db)
	owner := seedUser(t, db, "owner", "owner@example.com")

	group := &model.NoteGroup{Title: "Maison", UserID: owner.ID}
	if err := groups.CreateNoteGroup(group); err != nil {
		t.Fatalf("CreateNoteGroup: %v", err)
	}

	note := &model.Note{
		Title:         "Courses",
		Description:   "<p>Liste des courses de la semaine</p>",
		UserID:        owner.ID,
		CreatorPseudo: "owner",
		NoteGroupID:   group.ID,
		PathType:      model.PathTypeNone,
	}
	if err := notes.CreateNote(note); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if note.ID == 0 {
		t.Fatal("CreateNote did not assign an id")
	}

	note.Title = "Courses du lundi"
	note.SetImage(model.ImageSource{Kind: model.PathTypeURL, Path: "https://example.com/x.png"})
	if err := notes.UpdateNote(note); err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}

	got, err := notes.GetNote(note.ID)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.Title != "Courses du lundi" || got.PathType != model.PathTypeURL {
		t.Errorf("reloaded note = %q/%q", got.Title, got.PathType)
	}

	if err := notes.DeleteNote(note.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if _, err := notes.GetNote(note.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("after delete, err = %v, want ErrNoteNotFound", err)
	}
	if err := notes.DeleteNote(note.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("double delete err = %v, want ErrNoteNotFound", err)
	}
}

func TestGetNotesByGroupFiltersOwner(t *testing.T) {
	db := newTestDB(t)
	groups := GetNoteGroupsRepo(db)
	notes := GetNotesRepo(db)
	owner := seedUser(t, db, "owner", "owner@example.com")
	other := seedUser(t, db, "other", "other@example.com")

	group := &model.NoteGroup{Title: "Partagé", UserID: owner.ID}
	if err := groups.CreateNoteGroup(group); err != nil {
		t.Fatalf("CreateNoteGroup: %v", err)
	}
	note := &model.Note{
		Title:       "Privée",
		Description: "contenu privé du propriétaire",
		UserID:      owner.ID,
		NoteGroupID: group.ID,
		PathType:    model.PathTypeNone,
	}
	if err := notes.CreateNote(note); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	mine, err := notes.GetNotesByGroup(group.ID, owner.ID)
	if err != nil {
		t.Fatalf("GetNotesByGroup: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("owner sees %d notes, want 1", len(mine))
	}

	theirs, err := notes.GetNotesByGroup(group.ID, other.ID)
	if err != nil {
		t.Fatalf("GetNotesByGroup: %v", err)
	}
	if len(theirs) != 0 {
		t.Errorf("foreign user sees %d notes, want 0", len(theirs))
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := GetSessionRepo(db)
	user := seedUser(t, db, "alice", "alice@example.com")

	now := time.Now()
	session := &model.Session{
		ID:             "session-1",
		UserID:         user.ID,
		Pseudo:         user.Pseudo,
		CreatedAt:      now,
		ExpiresAt:      now.Add(time.Hour),
		LastActivityAt: now,
		IsActive:       true,
	}
	if err := repo.CreateSession(session); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := repo.GetSession("session-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil || got.UserID != user.ID {
		t.Fatalf("GetSession = %+v", got)
	}

	missing, err := repo.GetSession("no-such-session")
	if err != nil {
		t.Fatalf("GetSession miss: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown session, got %+v", missing)
	}

	count, err := repo.CountActiveSessions(user.ID)
	if err != nil || count != 1 {
		t.Fatalf("CountActiveSessions = %d, %v; want 1", count, err)
	}

	if err := repo.EndSession("session-1"); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	count, err = repo.CountActiveSessions(user.ID)
	if err != nil || count != 0 {
		t.Fatalf("CountActiveSessions after end = %d, %v; want 0", count, err)
	}

	if err := repo.EndSession("no-such-session"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("EndSession unknown id err = %v, want ErrSessionNotFound", err)
	}
}

func TestEndLeastActiveSession(t *testing.T) {
	db := newTestDB(t)
	repo := GetSessionRepo(db)
	user := seedUser(t, db, "alice", "alice@example.com")

	now := time.Now()
	for i, activity := range []time.Duration{-3 * time.Hour, -time.Hour, -time.Minute} {
		session := &model.Session{
			ID:             fmt.Sprintf("session-%d", i),
			UserID:         user.ID,
			Pseudo:         user.Pseudo,
			CreatedAt:      now,
			ExpiresAt:      now.Add(time.Hour),
			LastActivityAt: now.Add(activity),
			IsActive:       true,
		}
		if err := repo.CreateSession(session); err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
	}

	if err := repo.EndLeastActiveSession(user.ID); err != nil {
		t.Fatalf("EndLeastActiveSession: %v", err)
	}

	// The stalest session must be the one that was ended.
	stale, err := repo.GetSession("session-0")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if stale.IsActive {
		t.Error("least active session is still active")
	}
	count, err := repo.CountActiveSessions(user.ID)
	if err != nil || count != 2 {
		t.Fatalf("CountActiveSessions = %d, %v; want 2", count, err)
	}
}
