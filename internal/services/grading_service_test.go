package services

import (
	"strings"
	"testing"

	"cardfolio/internal/models"
	"cardfolio/internal/pagination"
	"cardfolio/internal/testutil"
)

func TestCreateSubmission(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGradingService(db)
		user := testutil.CreateTestUser(t, db)
		card := testutil.CreateTestCard(t, db, user.ID)

		submission, err := svc.CreateSubmission(user.ID, models.GradingCompanyPSA,
			[]SubmissionCardInput{{CardID: card.ID, DeclaredValue: 500}}, 75.00, 500.00, "bulk tier")
		testutil.AssertNoError(t, err)

		if submission.Status != models.SubmissionPreparing {
			t.Errorf("expected status preparing, got %s", submission.Status)
		}
		if !strings.HasPrefix(submission.Reference, "PSA-") {
			t.Errorf("expected PSA- reference, got %s", submission.Reference)
		}
		if len(submission.Cards) != 1 {
			t.Fatalf("expected 1 card, got %d", len(submission.Cards))
		}
		if submission.Cards[0].DeclaredValue != 500 {
			t.Errorf("expected declared value 500, got %.2f", submission.Cards[0].DeclaredValue)
		}
	})

	t.Run("empty_submission", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGradingService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateSubmission(user.ID, models.GradingCompanyBGS, nil, 0, 0, "")
		testutil.AssertAppError(t, err, "EMPTY_SUBMISSION")
	})

	t.Run("rejects_foreign_card", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGradingService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		card := testutil.CreateTestCard(t, db, alice.ID)

		_, err := svc.CreateSubmission(bob.ID, models.GradingCompanyCGC,
			[]SubmissionCardInput{{CardID: card.ID}}, 0, 0, "")
		testutil.AssertAppError(t, err, "CARD_NOT_FOUND")
	})
}

func TestMoveSubmission(t *testing.T) {
	t.Run("sets_timestamps", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGradingService(db)
		user := testutil.CreateTestUser(t, db)
		card := testutil.CreateTestCard(t, db, user.ID)
		submission := testutil.CreateTestSubmission(t, db, user.ID, card.ID)

		moved, err := svc.MoveSubmission(user.ID, submission.ID, models.SubmissionShipped)
		testutil.AssertNoError(t, err)

		if moved.Status != models.SubmissionShipped {
			t.Errorf("expected status shipped, got %s", moved.Status)
		}
		if moved.SubmittedAt == nil {
			t.Error("expected SubmittedAt on first ship")
		}

		moved, err = svc.MoveSubmission(user.ID, submission.ID, models.SubmissionReturned)
		testutil.AssertNoError(t, err)
		if moved.ReturnedAt == nil {
			t.Error("expected ReturnedAt when returned")
		}
	})

	t.Run("stages_can_be_skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGradingService(db)
		user := testutil.CreateTestUser(t, db)
		card := testutil.CreateTestCard(t, db, user.ID)
		submission := testutil.CreateTestSubmission(t, db, user.ID, card.ID)

		// preparing straight to graded, then back to grading
		if _, err := svc.MoveSubmission(user.ID, submission.ID, models.SubmissionGraded); err != nil {
			t.Fatalf("unexpected error skipping stages: %v", err)
		}
		if _, err := svc.MoveSubmission(user.ID, submission.ID, models.SubmissionGrading); err != nil {
			t.Fatalf("unexpected error moving backwards: %v", err)
		}
	})

	t.Run("returned_is_final", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGradingService(db)
		user := testutil.CreateTestUser(t, db)
		card := testutil.CreateTestCard(t, db, user.ID)
		submission := testutil.CreateTestSubmission(t, db, user.ID, card.ID)

		_, err := svc.MoveSubmission(user.ID, submission.ID, models.SubmissionReturned)
		testutil.AssertNoError(t, err)

		_, err = svc.MoveSubmission(user.ID, submission.ID, models.SubmissionGrading)
		testutil.AssertAppError(t, err, "SUBMISSION_CLOSED")
	})
}

func TestRecordGrades(t *testing.T) {
	t.Run("writes_grades_through_to_cards", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGradingService(db)
		user := testutil.CreateTestUser(t, db)
		card := testutil.CreateTestCard(t, db, user.ID)
		submission := testutil.CreateTestSubmission(t, db, user.ID, card.ID)

		graded, err := svc.RecordGrades(user.ID, submission.ID, []GradeInput{
			{SubmissionCardID: submission.Cards[0].ID, Grade: 9.5, GradeLabel: "MINT+"},
		})
		testutil.AssertNoError(t, err)

		if graded.Status != models.SubmissionGraded {
			t.Errorf("expected status graded, got %s", graded.Status)
		}
		if graded.Cards[0].Grade != 9.5 {
			t.Errorf("expected grade 9.5, got %.1f", graded.Cards[0].Grade)
		}

		var reloaded models.Card
		db.First(&reloaded, card.ID)
		if reloaded.Condition != models.ConditionGraded {
			t.Errorf("expected card condition graded, got %s", reloaded.Condition)
		}
		if reloaded.GradingCo != models.GradingCompanyPSA {
			t.Errorf("expected grading company PSA, got %s", reloaded.GradingCo)
		}
		if reloaded.Grade != 9.5 {
			t.Errorf("expected card grade 9.5, got %.1f", reloaded.Grade)
		}
	})

	t.Run("rejects_grade_for_foreign_submission_card", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGradingService(db)
		user := testutil.CreateTestUser(t, db)
		card := testutil.CreateTestCard(t, db, user.ID)
		submission := testutil.CreateTestSubmission(t, db, user.ID, card.ID)

		_, err := svc.RecordGrades(user.ID, submission.ID, []GradeInput{
			{SubmissionCardID: 99999, Grade: 10},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserSubmissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewGradingService(db)
	user := testutil.CreateTestUser(t, db)
	card := testutil.CreateTestCard(t, db, user.ID)

	first := testutil.CreateTestSubmission(t, db, user.ID, card.ID)
	testutil.CreateTestSubmission(t, db, user.ID, card.ID)
	db.Model(first).Update("status", models.SubmissionShipped)

	status := models.SubmissionShipped
	page, err := svc.GetUserSubmissions(user.ID, pagination.PageRequest{}, &status)
	testutil.AssertNoError(t, err)

	if page.TotalItems != 1 {
		t.Fatalf("expected 1 shipped submission, got %d", page.TotalItems)
	}
	if page.Data[0].ID != first.ID {
		t.Errorf("expected submission %d, got %d", first.ID, page.Data[0].ID)
	}
}

func TestDeleteSubmission(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewGradingService(db)
	user := testutil.CreateTestUser(t, db)
	card := testutil.CreateTestCard(t, db, user.ID)
	submission := testutil.CreateTestSubmission(t, db, user.ID, card.ID)

	testutil.AssertNoError(t, svc.DeleteSubmission(user.ID, submission.ID))

	_, err := svc.GetSubmissionByID(user.ID, submission.ID)
	testutil.AssertAppError(t, err, "SUBMISSION_NOT_FOUND")

	var count int64
	db.Model(&models.SubmissionCard{}).Where("submission_id = ?", submission.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected submission cards removed, found %d", count)
	}
}
