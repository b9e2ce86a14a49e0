package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"khoborpress/internal/errs"
	"khoborpress/internal/models"
)

func TestCommentCreateStartsPending(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	author := testUser(t, db, models.RoleEditor)
	reader := testUser(t, db, models.RoleReader)
	cat := testCategory(t, db)
	post := testPost(t, db, author.ID, cat.ID)

	c, err := s.Create(t.Context(), post.ID, reader.ID, nil, "চমৎকার লেখা")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.IsApproved {
		t.Error("expected new comment to start unapproved")
	}

	// Moderators also start pending.
	mc, err := s.Create(t.Context(), post.ID, author.ID, nil, "editor comment")
	if err != nil {
		t.Fatalf("Create (editor): %v", err)
	}
	if mc.IsApproved {
		t.Error("expected editor comment to start unapproved too")
	}
}

func TestCommentCreateValidation(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	author := testUser(t, db, models.RoleEditor)
	reader := testUser(t, db, models.RoleReader)
	cat := testCategory(t, db)
	post := testPost(t, db, author.ID, cat.ID)

	if _, err := s.Create(t.Context(), post.ID, reader.ID, nil, "   "); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("expected ErrInvalid for blank content, got %v", err)
	}
	if _, err := s.Create(t.Context(), uuid.New(), reader.ID, nil, "hi"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown post, got %v", err)
	}
	bogus := uuid.New()
	if _, err := s.Create(t.Context(), post.ID, reader.ID, &bogus, "hi"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown parent, got %v", err)
	}
}

func TestCommentReplyFlattening(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	author := testUser(t, db, models.RoleEditor)
	reader := testUser(t, db, models.RoleReader)
	cat := testCategory(t, db)
	post := testPost(t, db, author.ID, cat.ID)

	top, err := s.Create(t.Context(), post.ID, reader.ID, nil, "top")
	if err != nil {
		t.Fatalf("create top: %v", err)
	}
	reply, err := s.Create(t.Context(), post.ID, reader.ID, &top.ID, "reply")
	if err != nil {
		t.Fatalf("create reply: %v", err)
	}

	// Replying to the reply attaches to the top-level comment instead.
	deep, err := s.Create(t.Context(), post.ID, reader.ID, &reply.ID, "reply to reply")
	if err != nil {
		t.Fatalf("create deep reply: %v", err)
	}
	if deep.ParentID == nil || *deep.ParentID != top.ID {
		t.Errorf("expected deep reply parent %s, got %v", top.ID, deep.ParentID)
	}
}

func TestCommentVisibilityByRole(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	editor := testUser(t, db, models.RoleEditor)
	alice := testUser(t, db, models.RoleReader)
	bob := testUser(t, db, models.RoleReader)
	cat := testCategory(t, db)
	post := testPost(t, db, editor.ID, cat.ID)

	approved, _ := s.Create(t.Context(), post.ID, alice.ID, nil, "approved one")
	pending, _ := s.Create(t.Context(), post.ID, alice.ID, nil, "pending one")
	if err := s.SetApproval(models.Authenticated(editor.ID, models.RoleEditor), approved.ID, true); err != nil {
		t.Fatalf("approve: %v", err)
	}

	has := func(list []models.Comment, id uuid.UUID) bool {
		for _, c := range list {
			if c.ID == id {
				return true
			}
		}
		return false
	}

	// Guest: only the approved comment.
	guestView, err := s.ListForPost(post.ID, models.Guest())
	if err != nil {
		t.Fatalf("ListForPost guest: %v", err)
	}
	if !has(guestView, approved.ID) || has(guestView, pending.ID) {
		t.Errorf("guest view wrong: %v", guestView)
	}

	// Author: sees their own pending comment.
	aliceView, _ := s.ListForPost(post.ID, models.Authenticated(alice.ID, models.RoleReader))
	if !has(aliceView, approved.ID) || !has(aliceView, pending.ID) {
		t.Errorf("author view wrong: %v", aliceView)
	}

	// Another reader: does not see alice's pending comment.
	bobView, _ := s.ListForPost(post.ID, models.Authenticated(bob.ID, models.RoleReader))
	if has(bobView, pending.ID) {
		t.Error("other reader should not see pending comment")
	}

	// Moderator: sees everything.
	modView, _ := s.ListForPost(post.ID, models.Authenticated(editor.ID, models.RoleEditor))
	if !has(modView, approved.ID) || !has(modView, pending.ID) {
		t.Errorf("moderator view wrong: %v", modView)
	}
}

func TestCommentRepliesGroupedUnderParent(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	editor := testUser(t, db, models.RoleEditor)
	reader := testUser(t, db, models.RoleReader)
	cat := testCategory(t, db)
	post := testPost(t, db, editor.ID, cat.ID)
	mod := models.Authenticated(editor.ID, models.RoleEditor)

	top, _ := s.Create(t.Context(), post.ID, reader.ID, nil, "top")
	r1, _ := s.Create(t.Context(), post.ID, reader.ID, &top.ID, "first reply")
	r2, _ := s.Create(t.Context(), post.ID, reader.ID, &top.ID, "second reply")
	s.SetApproval(mod, top.ID, true)
	s.SetApproval(mod, r1.ID, true)
	s.SetApproval(mod, r2.ID, true)

	thread, err := s.ListForPost(post.ID, models.Guest())
	if err != nil {
		t.Fatalf("ListForPost: %v", err)
	}

	var found *models.Comment
	for i := range thread {
		if thread[i].ID == top.ID {
			found = &thread[i]
			break
		}
	}
	if found == nil {
		t.Fatal("expected top-level comment in thread")
	}
	if len(found.Replies) != 2 {
		t.Fatalf("replies: got %d, want 2", len(found.Replies))
	}
	// Replies stay oldest first.
	if found.Replies[0].ID != r1.ID || found.Replies[1].ID != r2.ID {
		t.Error("expected replies in chronological order")
	}
}

func TestCommentApprovalPermissions(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	editor := testUser(t, db, models.RoleEditor)
	reader := testUser(t, db, models.RoleReader)
	cat := testCategory(t, db)
	post := testPost(t, db, editor.ID, cat.ID)

	c, _ := s.Create(t.Context(), post.ID, reader.ID, nil, "needs approval")

	// Readers and guests cannot moderate, not even their own comment.
	err := s.SetApproval(models.Authenticated(reader.ID, models.RoleReader), c.ID, true)
	if !errors.Is(err, errs.ErrForbidden) {
		t.Errorf("expected ErrForbidden for reader, got %v", err)
	}
	err = s.SetApproval(models.Guest(), c.ID, true)
	if !errors.Is(err, errs.ErrForbidden) {
		t.Errorf("expected ErrForbidden for guest, got %v", err)
	}

	mod := models.Authenticated(editor.ID, models.RoleEditor)
	if err := s.SetApproval(mod, c.ID, true); err != nil {
		t.Fatalf("SetApproval: %v", err)
	}
	// Approving twice is idempotent.
	if err := s.SetApproval(mod, c.ID, true); err != nil {
		t.Fatalf("SetApproval (repeat): %v", err)
	}

	if err := s.SetApproval(mod, uuid.New(), true); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown comment, got %v", err)
	}
}

func TestCommentDeleteCascadesReplies(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	editor := testUser(t, db, models.RoleEditor)
	reader := testUser(t, db, models.RoleReader)
	cat := testCategory(t, db)
	post := testPost(t, db, editor.ID, cat.ID)
	mod := models.Authenticated(editor.ID, models.RoleEditor)

	top, _ := s.Create(t.Context(), post.ID, reader.ID, nil, "top")
	reply, _ := s.Create(t.Context(), post.ID, reader.ID, &top.ID, "reply")

	// Non-moderator cannot delete.
	err := s.Delete(t.Context(), models.Authenticated(reader.ID, models.RoleReader), top.ID)
	if !errors.Is(err, errs.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	if err := s.Delete(t.Context(), mod, top.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int
	db.QueryRow(`SELECT COUNT(*) FROM comments WHERE id = $1 OR id = $2`, top.ID, reply.ID).Scan(&count)
	if count != 0 {
		t.Errorf("expected comment and reply gone, %d rows remain", count)
	}
}

func TestCommentCountPending(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	editor := testUser(t, db, models.RoleEditor)
	reader := testUser(t, db, models.RoleReader)
	cat := testCategory(t, db)
	post := testPost(t, db, editor.ID, cat.ID)

	before, err := s.CountPending()
	if err != nil {
		t.Fatalf("CountPending: %v", err)
	}

	s.Create(t.Context(), post.ID, reader.ID, nil, "pending")

	after, err := s.CountPending()
	if err != nil {
		t.Fatalf("CountPending: %v", err)
	}
	if after != before+1 {
		t.Errorf("pending count: got %d, want %d", after, before+1)
	}
}
