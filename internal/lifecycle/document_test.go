package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edithub/edithub-api/internal/apperr"
	"github.com/edithub/edithub-api/internal/models"
	"github.com/edithub/edithub-api/internal/storage"
)

type fakeObjects struct {
	bucket   string
	region   string
	uploaded map[string]bool
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{bucket: "edithub-test", region: "us-east-1", uploaded: map[string]bool{}}
}

func (f *fakeObjects) IssueUploadURL(key, contentType string) (string, error) {
	return f.PublicURL(key) + "?signed", nil
}

func (f *fakeObjects) ObjectExists(key string) (bool, error) { return f.uploaded[key], nil }

func (f *fakeObjects) PublicURL(key string) string {
	return storage.PublicURL(key, f.bucket, f.region)
}

func (f *fakeObjects) Bucket() string { return f.bucket }
func (f *fakeObjects) Region() string { return f.region }

type fakeReservations struct {
	entries map[string][]byte
}

func newFakeReservations() *fakeReservations {
	return &fakeReservations{entries: map[string][]byte{}}
}

func (f *fakeReservations) Put(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeReservations) Get(_ context.Context, key string) ([]byte, error) {
	v, found := f.entries[key]
	if !found {
		return nil, ErrNoReservation
	}
	return v, nil
}

func (f *fakeReservations) Delete(_ context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

// uploadTestService wires the DB-backed service with in-memory object and
// reservation stores, and walks a post through approval so a project exists.
func uploadTestService(t *testing.T) (*Service, *fakeObjects, fixtures, *models.Project) {
	t.Helper()

	s := openTestService(t)
	objects := newFakeObjects()
	s.Storage = objects
	s.Reservations = newFakeReservations()

	fx := seedFixtures(t, s)
	post, err := s.CreatePost(fx.customer, CreatePostInput{
		CategoryID: fx.category.ID, Title: "Proofread my novel", Budget: 700, Duration: 21,
	})
	require.NoError(t, err)
	bid, err := s.SubmitBid(fx.editor, post.ID, SubmitBidInput{Price: 600})
	require.NoError(t, err)
	_, project, err := s.DecideBid(fx.customer, post.ID, bid.ID, DecisionApprove)
	require.NoError(t, err)

	return s, objects, fx, project
}

func TestUploadFlow(t *testing.T) {
	s, objects, fx, project := uploadTestService(t)
	ctx := context.Background()

	// customer reserves a key and gets a signed PUT URL
	res, err := s.ReserveUpload(ctx, fx.customer, project.ID, "Draft Chapter.pdf", "application/pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Key)
	assert.Contains(t, res.UploadURL, res.Key)

	// confirming before the object lands is rejected
	_, err = s.ConfirmUpload(ctx, fx.customer, ConfirmUploadInput{Key: res.Key, Name: "Draft"})
	requireKind(t, err, apperr.KindInvalidState)

	// the PUT happens, then the metadata row may exist
	objects.uploaded[res.Key] = true
	doc, err := s.ConfirmUpload(ctx, fx.customer, ConfirmUploadInput{Key: res.Key, Name: "Draft", Description: "First pass"})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentTypeSource, doc.Type)
	assert.Equal(t, project.ID, doc.ProjectID)
	assert.Equal(t, project.PostID, doc.PostID)
	assert.Equal(t, "pdf", doc.Extension)
	assert.Equal(t, objects.Bucket(), doc.Bucket)
	assert.Equal(t, objects.Region(), doc.Region)
	assert.Equal(t, objects.PublicURL(res.Key), doc.ImageURL)

	// the reservation is consumed by the confirm
	_, err = s.ConfirmUpload(ctx, fx.customer, ConfirmUploadInput{Key: res.Key, Name: "Draft"})
	requireKind(t, err, apperr.KindNotFound)

	// the editor's delivery is tagged EDITED
	res2, err := s.ReserveUpload(ctx, fx.editor, project.ID, "edited.pdf", "application/pdf")
	require.NoError(t, err)
	objects.uploaded[res2.Key] = true
	doc2, err := s.ConfirmUpload(ctx, fx.editor, ConfirmUploadInput{Key: res2.Key, Name: "Edited"})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentTypeEdited, doc2.Type)

	docs, err := s.ListProjectDocuments(fx.customer, project.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	// a non-participant sees nothing
	_, err = s.ListProjectDocuments(fx.stranger, project.ID)
	requireKind(t, err, apperr.KindAuthorization)
}

func TestConfirmUploadUploaderMismatch(t *testing.T) {
	s, objects, fx, project := uploadTestService(t)
	ctx := context.Background()

	res, err := s.ReserveUpload(ctx, fx.customer, project.ID, "source.docx", "application/msword")
	require.NoError(t, err)
	objects.uploaded[res.Key] = true

	// only the principal that reserved the key may confirm it
	_, err = s.ConfirmUpload(ctx, fx.editor, ConfirmUploadInput{Key: res.Key, Name: "source"})
	requireKind(t, err, apperr.KindAuthorization)

	// the reservation survives the rejected attempt
	doc, err := s.ConfirmUpload(ctx, fx.customer, ConfirmUploadInput{Key: res.Key, Name: "source"})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentTypeSource, doc.Type)
}

func TestReserveUploadGuards(t *testing.T) {
	s, _, fx, project := uploadTestService(t)
	ctx := context.Background()

	// a customer outside the engagement may not reserve
	_, err := s.ReserveUpload(ctx, fx.stranger, project.ID, "sneaky.pdf", "application/pdf")
	requireKind(t, err, apperr.KindAuthorization)

	// nor may a second editor
	_, err = s.ReserveUpload(ctx, fx.editor2, project.ID, "sneaky.pdf", "application/pdf")
	requireKind(t, err, apperr.KindAuthorization)

	_, err = s.ReserveUpload(ctx, fx.customer, project.ID, "   ", "application/pdf")
	requireKind(t, err, apperr.KindValidation)

	_, err = s.ConfirmUpload(ctx, fx.customer, ConfirmUploadInput{Key: "never-reserved.pdf"})
	requireKind(t, err, apperr.KindNotFound)
}
