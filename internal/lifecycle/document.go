package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/edithub/edithub-api/internal/apperr"
	"github.com/edithub/edithub-api/internal/models"
	"github.com/edithub/edithub-api/internal/realtime"
	"github.com/edithub/edithub-api/internal/storage"
)

const uploadReservationPrefix = "upload:"

// uploadReservation is what ReserveUpload parks in redis until the client
// finishes its direct PUT and calls ConfirmUpload.
type uploadReservation struct {
	ProjectID  uuid.UUID   `json:"project_id"`
	PostID     uuid.UUID   `json:"post_id"`
	UploaderID uuid.UUID   `json:"uploader_id"`
	Role       models.Role `json:"role"`
}

type ReserveUploadResult struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

// ReserveUpload issues a presigned PUT URL for a new object key and records
// the reservation. The reservation expires with the URL, so stale keys can
// never be confirmed.
func (s *Service) ReserveUpload(ctx context.Context, actor models.Principal, projectID uuid.UUID, filename, contentType string) (*ReserveUploadResult, error) {
	if actor.Role != models.RoleCustomer && actor.Role != models.RoleEditor {
		return nil, apperr.Authorization("")
	}
	if strings.TrimSpace(filename) == "" {
		return nil, apperr.ValidationMsg("filename", "Filename is required")
	}

	var project models.Project
	if err := s.DB.First(&project, "id = ?", projectID).Error; err != nil {
		return nil, notFoundOr(err, "project")
	}
	if !s.canViewProject(actor, &project) {
		return nil, apperr.Authorization("")
	}

	key := storage.BuildKey(filename)

	res := uploadReservation{
		ProjectID:  project.ID,
		PostID:     project.PostID,
		UploaderID: actor.ID,
		Role:       actor.Role,
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	if err := s.Reservations.Put(ctx, uploadReservationPrefix+key, raw, storage.UploadURLTTL); err != nil {
		return nil, err
	}

	uploadURL, err := s.Storage.IssueUploadURL(key, contentType)
	if err != nil {
		return nil, err
	}

	return &ReserveUploadResult{Key: key, UploadURL: uploadURL}, nil
}

type ConfirmUploadInput struct {
	Key         string
	Name        string
	Description string
}

// ConfirmUpload consumes the reservation, verifies the object actually
// exists in S3 and only then creates the Document row. The upload itself is
// never taken on the client's word.
func (s *Service) ConfirmUpload(ctx context.Context, actor models.Principal, in ConfirmUploadInput) (*models.Document, error) {
	if strings.TrimSpace(in.Key) == "" {
		return nil, apperr.ValidationMsg("key", "Upload key is required")
	}

	raw, err := s.Reservations.Get(ctx, uploadReservationPrefix+in.Key)
	if errors.Is(err, ErrNoReservation) {
		return nil, apperr.NotFound("upload reservation")
	}
	if err != nil {
		return nil, err
	}

	var res uploadReservation
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, err
	}
	if res.UploaderID != actor.ID || res.Role != actor.Role {
		return nil, apperr.Authorization("")
	}

	exists, err := s.Storage.ObjectExists(in.Key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.InvalidState("object has not been uploaded yet")
	}

	docType := models.DocumentTypeSource
	if actor.Role == models.RoleEditor {
		docType = models.DocumentTypeEdited
	}

	doc := models.Document{
		ProjectID:   res.ProjectID,
		PostID:      res.PostID,
		UploaderID:  actor.ID,
		Type:        docType,
		Key:         in.Key,
		Bucket:      s.Storage.Bucket(),
		Region:      s.Storage.Region(),
		Extension:   strings.TrimPrefix(path.Ext(in.Key), "."),
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    s.Storage.PublicURL(in.Key),
	}
	if err := s.DB.Create(&doc).Error; err != nil {
		return nil, duplicateOr(err, "document already recorded for this upload")
	}

	_ = s.Reservations.Delete(ctx, uploadReservationPrefix+in.Key)

	var project models.Project
	if err := s.DB.First(&project, "id = ?", res.ProjectID).Error; err == nil {
		s.notify(project.CustomerID, project.EditorID, realtime.Event{
			Type:    realtime.EventDocumentAttached,
			Payload: doc,
		})
	}

	return &doc, nil
}

// ListProjectDocuments returns a project's documents for either participant.
func (s *Service) ListProjectDocuments(actor models.Principal, projectID uuid.UUID) ([]models.Document, error) {
	var project models.Project
	if err := s.DB.First(&project, "id = ?", projectID).Error; err != nil {
		return nil, notFoundOr(err, "project")
	}
	if !s.canViewProject(actor, &project) {
		return nil, apperr.Authorization("")
	}

	var docs []models.Document
	err := s.DB.
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}
